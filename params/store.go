package params

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Snapshot is an immutable copy of the parameters taken for one render or
// export call.
type Snapshot struct {
	ShaderParameters
	Version uint64
}

// Store owns the mutable parameter record. It is driven from the render
// thread only (input callbacks run inside the event poll), so it carries no
// lock.
type Store struct {
	cur     ShaderParameters
	version uint64
}

func NewStore(initial ShaderParameters) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &Store{cur: initial.Clone(), version: 1}, nil
}

// Snapshot copies the current record.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{ShaderParameters: s.cur.Clone(), Version: s.version}
}

func (s *Store) Version() uint64 { return s.version }

// Set assigns a numeric field by name, clamped to its documented range. The
// returned flag reports whether the change needs a shader rebuild before it
// becomes visible.
func (s *Store) Set(name string, v float64) (rebuild bool, err error) {
	f, ok := Lookup(name)
	if !ok {
		return false, fmt.Errorf("unknown parameter %q", name)
	}
	if f.set == nil {
		return false, fmt.Errorf("parameter %q is not numeric", name)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false, fmt.Errorf("parameter %s is not finite: %v", name, v)
	}
	old := f.get(&s.cur)
	f.set(&s.cur, Clamp(v, f.Min, f.Max))
	if f.get(&s.cur) == old {
		return false, nil
	}
	s.version++
	return f.Effect == EffectRebuild, nil
}

// Adjust adds delta to a numeric field.
func (s *Store) Adjust(name string, delta float64) (rebuild bool, err error) {
	f, ok := Lookup(name)
	if !ok || f.get == nil {
		return false, fmt.Errorf("unknown parameter %q", name)
	}
	return s.Set(name, f.get(&s.cur)+delta)
}

// Get reads a numeric field by name.
func (s *Store) Get(name string) (float64, bool) {
	f, ok := Lookup(name)
	if !ok {
		return 0, false
	}
	return f.Get(&s.cur), true
}

// SetStops replaces the gradient stops. Order is preserved.
func (s *Store) SetStops(stops []colorful.Color) {
	s.cur.GradientColors = append([]colorful.Color(nil), stops...)
	s.version++
}

// Reset restores the documented defaults. A rebuild is always required.
func (s *Store) Reset() (rebuild bool) {
	s.cur = Defaults()
	s.version++
	return true
}
