package eval

import "sort"

// Environment maps variable names to values. It belongs to one Evaluator
// and is only written by assignment.
type Environment struct {
	values map[string]int64
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]int64)}
}

// Lookup returns the bound value and whether name is bound.
func (e *Environment) Lookup(name string) (int64, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Set binds name, replacing any previous binding.
func (e *Environment) Set(name string, v int64) {
	e.values[name] = v
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
