package constants

const (
	// DefaultTimestep is the fixed physics step in seconds.
	// The simulation is tuned for 200 steps per second.
	DefaultTimestep float64 = 0.005
	// DefaultGravity is the acceleration applied along z (real mars gravity is 3.69 m/s2)
	DefaultGravity float64 = -3.69
	// DefaultScaling is how many pixels are in one world unit
	DefaultScaling float64 = 1.0

	// MinExtent is the smallest bounding box extent on any axis
	MinExtent float64 = 1.0

	// GroundFrictionBase is raised to the timestep to get the per-step friction factor
	GroundFrictionBase float64 = 0.0001

	// BounceThreshold is the speed above which a blocked x/y move reverses
	BounceThreshold float64 = 0.2
	// VerticalBounceThreshold is the speed above which a blocked rising move reverses
	VerticalBounceThreshold float64 = 2.5
	// BounceDamping scales the reversed velocity after a blocked move
	BounceDamping float64 = 0.2

	// FallFloor is the lowest z a body can be clamped to when it tunnels below the ground
	FallFloor float64 = -10.0

	// SleepPrecisionXY is the number of decimals used to decide x/y rest
	SleepPrecisionXY int = 4
	// SleepPrecisionZ is the number of decimals used to decide z rest
	SleepPrecisionZ int = 1

	// WarpClearanceIterations bounds the 1-unit nudges after a warp
	WarpClearanceIterations int = 40

	// WalkSoundTTL is how long a walk sound blocks re-emission, in seconds
	WalkSoundTTL float64 = 0.6
	// DefaultSoundTTL is the ttl used by EmitSound when none is given, in seconds
	DefaultSoundTTL float64 = 0.35

	// PathfindingMaxNodes limits the nodes expanded by a single search
	PathfindingMaxNodes int = 4096
)
