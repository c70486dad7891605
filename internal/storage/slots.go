package storage

import (
	"errors"
	"fmt"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Capacity is the fixed number of slots in a record image.
const Capacity = 5

var (
	// ErrSlotRange indicates a slot number outside 1..Capacity.
	ErrSlotRange = errors.New("storage: slot out of range")

	// ErrSlotEmpty indicates a selection of a slot that holds no data set.
	ErrSlotEmpty = errors.New("storage: slot is empty")
)

// Slot is either empty or holds one complete parameter set.
type Slot struct {
	params reactor.Params
	filled bool
}

func EmptySlot() Slot {
	return Slot{}
}

func FilledSlot(p reactor.Params) Slot {
	return Slot{params: p, filled: true}
}

func (s Slot) IsEmpty() bool {
	return !s.filled
}

// Params returns the stored set and whether the slot holds one.
func (s Slot) Params() (reactor.Params, bool) {
	return s.params, s.filled
}

// Slots is the full fixed-size record image, index 0 being slot 1.
type Slots [Capacity]Slot

// Any reports whether at least one slot is filled.
func (s Slots) Any() bool {
	for _, slot := range s {
		if slot.filled {
			return true
		}
	}
	return false
}

// Get returns the slot with the 1-based number n.
func (s Slots) Get(n int) (Slot, error) {
	if err := CheckSlot(n); err != nil {
		return Slot{}, err
	}
	return s[n-1], nil
}

// CheckSlot validates a 1-based slot number. Zero is not a valid slot.
func CheckSlot(n int) error {
	if n < 1 || n > Capacity {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrSlotRange, n, Capacity)
	}
	return nil
}
