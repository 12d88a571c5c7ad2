package models

import "github.com/cbodonnell/tilearea/pkg/kinematic"

// Placement is where an entity was last saved.
type Placement struct {
	EntityID    string           `json:"entity_id"`
	AreaID      string           `json:"area_id"`
	Timestamp   int64            `json:"timestamp"`
	Position    kinematic.Vector `json:"position"`
	Orientation float64          `json:"orientation"`
}
