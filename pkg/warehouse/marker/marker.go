// Package marker defines the transient highlight placed on the map at a located point.
package marker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockmap/pkg/engine/geom"
)

// Marker is the single active highlight. A new Marker gets a new ID so that
// observers (the animator, the REST API) can tell a replacement from the same marker.
type Marker struct {
	ID        uuid.UUID  `json:"id"`
	World     geom.Point `json:"world"`
	Label     string     `json:"label"`
	CreatedAt time.Time  `json:"createdAt"`
}

// New creates a marker at a world point
func New(world geom.Point, label string) *Marker {
	return &Marker{
		ID:        uuid.New(),
		World:     world,
		Label:     label,
		CreatedAt: time.Now(),
	}
}

// LocateLabel builds the label shown for a located item: "<code> (<shelf>-<slot>)".
// An empty slot leaves the part after the dash empty.
func LocateLabel(itemCode, shelfID, slotName string) string {
	return fmt.Sprintf("%s (%s-%s)", itemCode, shelfID, slotName)
}
