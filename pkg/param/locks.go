package param

// Lockable parameter names. The five slot locks map positionally onto the
// active algorithm's first five parameters, the way a generic knob surface
// would.
const (
	LockIntensity        = "intensity"
	LockCenter           = "center"
	LockComplexity       = "complexity"
	LockFlow             = "flow"
	LockRandomness       = "randomness"
	LockPeakIrregularity = "peak_irregularity"
	LockSlot1            = "slot1"
	LockSlot2            = "slot2"
	LockSlot3            = "slot3"
	LockSlot4            = "slot4"
	LockSlot5            = "slot5"
)

// LockNames lists every lockable parameter in display order.
var LockNames = []string{
	LockIntensity, LockCenter,
	LockComplexity, LockFlow, LockRandomness, LockPeakIrregularity,
	LockSlot1, LockSlot2, LockSlot3, LockSlot4, LockSlot5,
}

// LockSet records which parameters randomization must not touch. The zero
// value is an empty set; the map is never mutated by readers.
type LockSet map[string]bool

// NewLockSet returns an empty lock set.
func NewLockSet() LockSet {
	return make(LockSet)
}

// Lock marks a parameter as locked and returns the set for chaining.
func (s LockSet) Lock(names ...string) LockSet {
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Unlock removes locks.
func (s LockSet) Unlock(names ...string) LockSet {
	for _, n := range names {
		delete(s, n)
	}
	return s
}

// Locked reports whether the named parameter is locked. A nil set locks
// nothing.
func (s LockSet) Locked(name string) bool {
	return s != nil && s[name]
}
