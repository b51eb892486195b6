package game

import "strings"

// ZoneKind is one of the seven room kinds, plus a sentinel for "no zone"
// (used for the ghost while absent).
type ZoneKind uint8

const (
	Caravan ZoneKind = iota
	Kitchen
	LivingRoom
	Bedroom
	Bathroom
	Garage
	Basement
	ZoneNone
)

var zoneKindNames = [...]string{
	"CARAVAN", "KITCHEN", "LIVING_ROOM", "ROOM", "BATHROOM", "GARAGE", "BASEMENT", "-",
}

func (k ZoneKind) String() string {
	if int(k) >= len(zoneKindNames) {
		return "-"
	}
	return zoneKindNames[k]
}

// mapZoneKinds is the pool the map editor draws from; the caravan kind is
// reserved for the deposit registry and never placed on the patrol ring.
var mapZoneKinds = []ZoneKind{Kitchen, LivingRoom, Bedroom, Bathroom, Garage, Basement}

// Zone is one location on the patrol ring.
type Zone struct {
	Kind     ZoneKind
	Evidence Item // an evidence kind, or NoItem
	Object   Item // a pickup-able object, or NoItem

	next *Zone
}

// Next returns the successor zone; the ring is circular, so the last zone's
// successor is the first.
func (z *Zone) Next() *Zone {
	return z.next
}

// Ring is the fixed-size circular sequence of zones, built once during setup
// and never resized during play.
type Ring struct {
	first *Zone
	last  *Zone
	size  int
}

func NewRing() *Ring {
	return &Ring{}
}

func (r *Ring) Len() int {
	return r.size
}

// First returns the head of the ring, where the caravan registry stands and
// players respawn after a deposit run.
func (r *Ring) First() *Zone {
	return r.first
}

// Append links a new zone at the tail and closes the circle.
func (r *Ring) Append(zone *Zone) {
	if r.first == nil {
		r.first = zone
		r.last = zone
		zone.next = zone
		r.size = 1
		return
	}

	r.last.next = zone
	r.last = zone
	zone.next = r.first
	r.size++
}

// RemoveLast unlinks the tail zone. Returns false on an empty ring.
func (r *Ring) RemoveLast() bool {
	if r.first == nil {
		return false
	}

	if r.first == r.last {
		r.first = nil
		r.last = nil
		r.size = 0
		return true
	}

	scan := r.first
	for scan.next != r.last {
		scan = scan.next
	}
	scan.next = r.first
	r.last = scan
	r.size--
	return true
}

// String renders the zone chain as "KITCHEN --> GARAGE --> ...".
func (r *Ring) String() string {
	if r.first == nil {
		return ""
	}

	var b strings.Builder
	for scan := r.first; scan != r.last; scan = scan.next {
		b.WriteString(scan.Kind.String())
		b.WriteString(" --> ")
	}
	b.WriteString(r.last.Kind.String())
	return b.String()
}
