package viewer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/cbodonnell/tilearea/client/fonts"
	"github.com/cbodonnell/tilearea/client/input"
	"github.com/cbodonnell/tilearea/pkg/area"
	"github.com/cbodonnell/tilearea/pkg/bbox"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	"github.com/cbodonnell/tilearea/pkg/log"
	"github.com/cbodonnell/tilearea/pkg/projection"
	"github.com/cbodonnell/tilearea/pkg/signals"
	"github.com/cbodonnell/tilearea/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	// SpeechTTL is how long said text stays on screen, in seconds.
	SpeechTTL float64 = 3.0
	// DefaultWalkForce is the steering force of the controlled avatar.
	DefaultWalkForce float64 = 600.0
	// DefaultJumpSpeed is the upward velocity given by a jump, in units per
	// physics step.
	DefaultJumpSpeed float64 = 4.0
)

type speech struct {
	text     string
	entityID string
	pos      kinematic.Vector
	ttl      float64
}

// Viewer runs a universe locally and draws one area at a time. It implements
// ebiten.Game.
type Viewer struct {
	universe  *world.Universe
	entityID  string
	areaID    string
	scale     float64
	walkForce float64
	jumpSpeed float64
	phrases   []string
	said      int
	debug     bool

	speeches []speech
	width    int
	height   int
}

type NewViewerOptions struct {
	Universe *world.Universe
	// EntityID is the avatar driven by the arrow keys. The viewer follows it
	// through warps.
	EntityID string
	// Scale multiplies world units into screen pixels.
	Scale     float64
	WalkForce float64
	JumpSpeed float64
	// Phrases are said in turn when the say key is pressed.
	Phrases []string
	Debug   bool
	Width   int
	Height  int
}

func NewViewer(opts NewViewerOptions) (*Viewer, error) {
	if opts.Universe == nil {
		return nil, fmt.Errorf("universe is required")
	}
	areas := opts.Universe.Areas()
	if len(areas) == 0 {
		return nil, fmt.Errorf("universe has no areas")
	}
	v := &Viewer{
		universe:  opts.Universe,
		entityID:  opts.EntityID,
		areaID:    areas[0].ID(),
		scale:     opts.Scale,
		walkForce: opts.WalkForce,
		jumpSpeed: opts.JumpSpeed,
		phrases:   opts.Phrases,
		debug:     opts.Debug,
		width:     opts.Width,
		height:    opts.Height,
	}
	if v.scale <= 0 {
		v.scale = 1
	}
	if v.walkForce == 0 {
		v.walkForce = DefaultWalkForce
	}
	if v.jumpSpeed == 0 {
		v.jumpSpeed = DefaultJumpSpeed
	}
	if a, ok := v.universe.Locate(v.entityID); ok {
		v.areaID = a.ID()
	}
	v.universe.Bus().Subscribe(signals.TextEmitted, v.onText)
	v.universe.Bus().Subscribe(signals.BodyWarped, v.onWarp)
	return v, nil
}

func (v *Viewer) onText(s signals.Signal) {
	said, _ := s.Payload.(string)
	v.speeches = append(v.speeches, speech{text: said, entityID: s.Sender, pos: s.Position, ttl: SpeechTTL})
}

func (v *Viewer) onWarp(s signals.Signal) {
	if s.Sender != v.entityID {
		return
	}
	payload, ok := s.Payload.(signals.WarpPayload)
	if !ok {
		return
	}
	log.Debug("Following %s into area %s", v.entityID, payload.ToArea)
	v.areaID = payload.ToArea
}

func (v *Viewer) currentArea() (*area.Area, bool) {
	return v.universe.Area(v.areaID)
}

// Update handles input and runs one tick of every area.
func (v *Viewer) Update() error {
	if input.IsDebugJustPressed() {
		v.debug = !v.debug
	}
	if input.IsNextAreaJustPressed() {
		v.nextArea()
	}
	v.steer()

	deltaTime := 1.0 / float64(ebiten.TPS())
	if err := v.universe.Update(deltaTime); err != nil {
		log.Warn("Tick finished with errors: %v", err)
	}
	v.speeches = ageSpeeches(v.speeches, deltaTime)
	return nil
}

func (v *Viewer) nextArea() {
	areas := v.universe.Areas()
	for i, a := range areas {
		if a.ID() == v.areaID {
			v.areaID = areas[(i+1)%len(areas)].ID()
			return
		}
	}
}

func (v *Viewer) steer() {
	a, ok := v.universe.Locate(v.entityID)
	if !ok {
		return
	}
	mode := a.Projection().Mode()
	dir := input.Direction(mode)
	if err := a.SetForce(v.entityID, dir.Scale(v.walkForce)); err != nil {
		log.Error("Failed to steer %s: %v", v.entityID, err)
		return
	}
	if !dir.IsZero() {
		if err := a.SetOrientation(v.entityID, math.Atan2(dir.Y, dir.X)); err != nil {
			log.Error("Failed to turn %s: %v", v.entityID, err)
		}
	}
	if mode == projection.Platformer && input.IsJumpJustPressed() {
		if grounded, _ := a.IsGrounded(v.entityID); grounded {
			v.jump(a)
		}
	}
	if input.IsSayJustPressed() && len(v.phrases) > 0 {
		if err := a.EmitTextFrom(v.entityID, v.phrases[v.said%len(v.phrases)]); err != nil {
			log.Error("Failed to speak for %s: %v", v.entityID, err)
		}
		v.said++
	}
}

func (v *Viewer) jump(a *area.Area) {
	body, err := a.Body(v.entityID)
	if err != nil {
		log.Error("Failed to jump %s: %v", v.entityID, err)
		return
	}
	body.Velocity.Z = v.jumpSpeed
	if err := a.Wake(v.entityID); err != nil {
		log.Error("Failed to wake %s: %v", v.entityID, err)
	}
}

func ageSpeeches(speeches []speech, deltaTime float64) []speech {
	kept := speeches[:0]
	for _, s := range speeches {
		s.ttl -= deltaTime
		if s.ttl > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

// Draw draws the area the viewer is looking at.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	a, ok := v.currentArea()
	if !ok {
		text.Draw(screen, "area "+v.areaID+" is gone", fonts.HUDFont, 8, 20, colornames.White)
		return
	}
	c := newCanvas(a.Projection(), a.Tiles(), v.scale)

	if tiles := a.Tiles(); tiles != nil {
		for y := 0; y < tiles.Height(); y++ {
			for x := 0; x < tiles.Width(); x++ {
				tile := projection.TileCoord{X: x, Y: y}
				if tiles.Blocked(tile) {
					c.fillTile(screen, tile, colornames.Slategray)
				}
			}
		}
	}
	for _, exit := range a.Exits() {
		c.fillTile(screen, exit.Tile, colornames.Darkorchid)
	}
	if v.debug {
		// the merged collision boxes, not the tiles they came from
		for _, wall := range a.Group().StaticBodies() {
			c.strokeBBox(screen, wall.BBox, colornames.Orangered)
		}
	}

	for _, e := range a.Entities() {
		b, err := a.BBox(e.ID)
		if err != nil {
			continue
		}
		clr := color.Color(colornames.Peru)
		if e.ID == v.entityID {
			clr = colornames.Limegreen
		} else if sleeping, _ := a.IsSleeping(e.ID); sleeping {
			clr = colornames.Sienna
		}
		c.fillBBox(screen, b, clr)
		if v.debug {
			x, y := c.point(b.TopCenter())
			text.Draw(screen, e.Name, fonts.SpeechFont, int(x), int(y)-2, colornames.Gray)
		}
	}

	for _, s := range a.Sounds() {
		x, y := c.point(s.Position)
		radius := float32((s.Elapsed + 0.1) * 20 * v.scale)
		vector.StrokeCircle(screen, x, y, radius, 1, colornames.Gold, false)
	}

	for _, s := range v.speeches {
		pos := s.pos
		if b, err := a.BBox(s.entityID); err == nil {
			pos = b.TopCenter()
		}
		x, y := c.point(pos)
		text.Draw(screen, s.text, fonts.SpeechFont, int(x), int(y)-12, colornames.White)
	}

	status := fmt.Sprintf("%s (%s)  t=%.1fs  bodies=%d", a.Name(), a.Projection().Mode(), a.Elapsed(), a.Len())
	if v.debug {
		status += fmt.Sprintf("  tps=%.0f", ebiten.ActualTPS())
	}
	text.Draw(screen, status, fonts.HUDFont, 8, v.height-8, colornames.White)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// canvas maps world space to screen pixels for one area.
type canvas struct {
	projection projection.Projection
	scale      float64
	// flip is the pixel height of a platformer area; z grows up the screen.
	flip float64
}

func newCanvas(p projection.Projection, tiles area.TileGrid, scale float64) canvas {
	c := canvas{projection: p, scale: scale}
	if p.Mode() == projection.Platformer && tiles != nil {
		top := p.TileToWorld(projection.TileCoord{Y: tiles.Height()})
		_, c.flip = p.WorldToPixel(top)
	}
	return c
}

func (c canvas) point(w kinematic.Vector) (float32, float32) {
	x, y := c.projection.WorldToPixel(w)
	if c.flip > 0 {
		y = c.flip - y
	}
	return float32(x * c.scale), float32(y * c.scale)
}

func (c canvas) fillBBox(screen *ebiten.Image, b *bbox.BBox, clr color.Color) {
	x0, y0 := c.point(b.Origin())
	x1, y1 := c.point(b.Origin().Add(b.Size()))
	vector.DrawFilledRect(screen, min(x0, x1), min(y0, y1), abs32(x1-x0), abs32(y1-y0), clr, false)
}

func (c canvas) strokeBBox(screen *ebiten.Image, b *bbox.BBox, clr color.Color) {
	x0, y0 := c.point(b.Origin())
	x1, y1 := c.point(b.Origin().Add(b.Size()))
	vector.StrokeRect(screen, min(x0, x1), min(y0, y1), abs32(x1-x0), abs32(y1-y0), 1, clr, false)
}

func (c canvas) fillTile(screen *ebiten.Image, tile projection.TileCoord, clr color.Color) {
	c.fillBBox(screen, c.projection.RectToBBox(c.projection.TileRect(tile)), clr)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
