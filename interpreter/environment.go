package interpreter

import (
	"sort"

	"github.com/pontaoski/midas/literal"
)

// Environment is the single flat set of variable bindings for one program
// run. There are no nested scopes.
type Environment struct {
	values map[string]literal.Value
}

func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]literal.Value)}
}

// Define binds name, replacing any earlier binding.
func (e *Environment) Define(name string, value literal.Value) {
	e.values[name] = value
}

// Get looks name up. Reporting a miss is up to the caller.
func (e *Environment) Get(name string) (literal.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
