package messages

import (
	"github.com/cbodonnell/tilearea/pkg/kinematic"
)

// Message types sent on the snapshot stream
const (
	MessageTypeServerAreaSnapshot = "snapshot"
	MessageTypeServerAreaRemoved  = "removed"
)

// BodySnapshot is the published state of one body.
type BodySnapshot struct {
	EntityID     string           `json:"entityID"`
	Name         string           `json:"name"`
	Position     kinematic.Vector `json:"position"`
	Size         kinematic.Vector `json:"size"`
	Velocity     kinematic.Vector `json:"velocity"`
	Orientation  float64          `json:"orientation"`
	Sleeping     bool             `json:"sleeping"`
	Capabilities uint8            `json:"capabilities"`
}

// Equal returns true if the two snapshots are equal.
func (b *BodySnapshot) Equal(other *BodySnapshot) bool {
	if b == nil || other == nil {
		return b == other
	}
	return *b == *other
}

// SoundSnapshot is a sound that is still playing.
type SoundSnapshot struct {
	Filename string           `json:"filename"`
	Position kinematic.Vector `json:"position"`
	TTL      float64          `json:"ttl"`
	Elapsed  float64          `json:"elapsed"`
}

// AreaSnapshot is the published state of an area after a tick. Bodies are in
// insertion order.
type AreaSnapshot struct {
	AreaID    string           `json:"areaID"`
	Name      string           `json:"name"`
	Mode      string           `json:"mode"`
	Timestamp int64            `json:"timestamp"`
	Elapsed   float64          `json:"elapsed"`
	Bodies    []*BodySnapshot  `json:"bodies"`
	Sounds    []*SoundSnapshot `json:"sounds"`
}

// Body returns the snapshot of the body with the given entity ID.
func (a *AreaSnapshot) Body(entityID string) (*BodySnapshot, bool) {
	for _, b := range a.Bodies {
		if b.EntityID == entityID {
			return b, true
		}
	}
	return nil, false
}

// AreaSummary is the listing entry of an area.
type AreaSummary struct {
	AreaID    string  `json:"areaID"`
	Name      string  `json:"name"`
	Mode      string  `json:"mode"`
	Bodies    int     `json:"bodies"`
	Elapsed   float64 `json:"elapsed"`
	Timestamp int64   `json:"timestamp"`
}

func (a *AreaSnapshot) Summary() AreaSummary {
	return AreaSummary{
		AreaID:    a.AreaID,
		Name:      a.Name,
		Mode:      a.Mode,
		Bodies:    len(a.Bodies),
		Elapsed:   a.Elapsed,
		Timestamp: a.Timestamp,
	}
}
