package timeslot

import (
	"fmt"
	"time"
)

// Slot is a permitted appointment start time, stored as minutes from
// midnight. Slots are comparable and totally ordered.
type Slot int

// Parse converts an "HH:MM" string into a Slot.
func Parse(s string) (Slot, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return Slot(t.Hour()*60 + t.Minute()), nil
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", int(s)/60, int(s)%60)
}

// At anchors the slot onto a calendar date (midnight UTC) and returns the
// start instant.
func (s Slot) At(date time.Time) time.Time {
	return date.Add(time.Duration(s) * time.Minute)
}

// Catalog is the fixed set of permitted start times across a business day:
// every width minutes from open (inclusive) to close (exclusive).
type Catalog struct {
	open  Slot
	close Slot
	width int
}

func NewCatalog(open, close Slot, widthMinutes int) (*Catalog, error) {
	if widthMinutes <= 0 {
		return nil, fmt.Errorf("slot width must be positive, got %d", widthMinutes)
	}
	if close <= open {
		return nil, fmt.Errorf("closing time %s must be after opening time %s", close, open)
	}
	return &Catalog{open: open, close: close, width: widthMinutes}, nil
}

// Contains reports whether s is a permitted start time. Unknown values are
// simply not permitted.
func (c *Catalog) Contains(s Slot) bool {
	return s >= c.open && s < c.close && int(s-c.open)%c.width == 0
}

// Slots returns every permitted start time in ascending order.
func (c *Catalog) Slots() []Slot {
	out := make([]Slot, 0, int(c.close-c.open)/c.width)
	for s := c.open; s < c.close; s += Slot(c.width) {
		out = append(out, s)
	}
	return out
}

// Width returns the catalog's slot width.
func (c *Catalog) Width() time.Duration {
	return time.Duration(c.width) * time.Minute
}
