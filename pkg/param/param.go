// Package param describes the engine's tunable parameters: their ranges,
// defaults, and step counts, plus the lock set that shields parameters from
// randomization. Validation and the randomization policy both read ranges
// from here so they cannot drift apart.
package param

import "fmt"

// Def describes one tunable parameter.
type Def struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
	Steps   int // >0 means a discrete parameter with this many intervals
	Unit    string
}

// New starts a parameter definition with a unit range and zero default.
func New(name string) Def {
	return Def{Name: name, Min: 0, Max: 1}
}

// Range sets the plain value range.
func (d Def) Range(min, max float64) Def {
	d.Min = min
	d.Max = max
	return d
}

// WithDefault sets the default plain value.
func (d Def) WithDefault(v float64) Def {
	d.Default = v
	return d
}

// Discrete marks the parameter as integer-stepped across its range.
func (d Def) Discrete(steps int) Def {
	d.Steps = steps
	return d
}

// WithUnit sets the display unit.
func (d Def) WithUnit(u string) Def {
	d.Unit = u
	return d
}

// Clamp restricts v to the parameter's range, rounding discrete parameters
// to the nearest step.
func (d Def) Clamp(v float64) float64 {
	if v < d.Min {
		v = d.Min
	}
	if v > d.Max {
		v = d.Max
	}
	if d.Steps > 0 {
		v = d.Min + float64(int(((v-d.Min)/(d.Max-d.Min))*float64(d.Steps)+0.5))*(d.Max-d.Min)/float64(d.Steps)
		if v > d.Max {
			v = d.Max
		}
	}
	return v
}

// Contains reports whether v lies within the parameter's range.
func (d Def) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// Normalize maps a plain value to [0, 1].
func (d Def) Normalize(v float64) float64 {
	if d.Max <= d.Min {
		return 0
	}
	n := (v - d.Min) / (d.Max - d.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// Denormalize maps a normalized value back to the plain range.
func (d Def) Denormalize(n float64) float64 {
	return d.Min + n*(d.Max-d.Min)
}

// Registry holds parameter definitions in registration order.
type Registry struct {
	defs  map[string]Def
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Def)}
}

// Add registers definitions, rejecting duplicate names.
func (r *Registry) Add(defs ...Def) error {
	for _, d := range defs {
		if _, exists := r.defs[d.Name]; exists {
			return fmt.Errorf("param: duplicate definition %q", d.Name)
		}
		r.defs[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	return nil
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (Def, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the parameter names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.order)
}
