package runtime

import (
	"sort"

	"lox/interpreter-go/pkg/token"
)

// Handle addresses one scope record inside a Scopes arena.
type Handle int

// NoScope is the enclosing handle of the global scope.
const NoScope Handle = -1

type scopeRecord struct {
	values    map[string]Value
	enclosing Handle
}

// Scopes is an arena of scope records. Without closures, scopes are created
// and discarded strictly in LIFO order, so the arena is a stack: Push appends
// a record and Release truncates back to a handle.
type Scopes struct {
	records  []scopeRecord
	maxDepth int
}

// NewScopes creates an arena holding only the global scope.
func NewScopes() *Scopes {
	s := &Scopes{}
	s.records = append(s.records, scopeRecord{values: make(map[string]Value), enclosing: NoScope})
	s.maxDepth = 1
	return s
}

// Global returns the global scope.
func (s *Scopes) Global() Environment {
	return Environment{scopes: s, handle: 0}
}

// Push opens a child scope of enclosing.
func (s *Scopes) Push(enclosing Handle) Environment {
	s.records = append(s.records, scopeRecord{values: make(map[string]Value), enclosing: enclosing})
	if len(s.records) > s.maxDepth {
		s.maxDepth = len(s.records)
	}
	return Environment{scopes: s, handle: Handle(len(s.records) - 1)}
}

// Release discards h and every scope opened after it. The global scope is
// never released.
func (s *Scopes) Release(h Handle) {
	if h <= 0 || int(h) >= len(s.records) {
		return
	}
	for idx := int(h); idx < len(s.records); idx++ {
		s.records[idx] = scopeRecord{}
	}
	s.records = s.records[:h]
}

// Depth is the number of live scopes, including the global one.
func (s *Scopes) Depth() int {
	return len(s.records)
}

// MaxDepth is the deepest the arena has been.
func (s *Scopes) MaxDepth() int {
	return s.maxDepth
}

// Environment is a handle-bound view of one scope in the arena. It is only
// valid until its scope is released.
type Environment struct {
	scopes *Scopes
	handle Handle
}

// NewEnvironment creates a fresh arena and returns its global scope.
func NewEnvironment() Environment {
	return NewScopes().Global()
}

// Handle returns the scope handle backing this environment.
func (e Environment) Handle() Handle {
	return e.handle
}

// Scopes returns the arena this environment lives in.
func (e Environment) Scopes() *Scopes {
	return e.scopes
}

// Extend opens a child scope enclosed by e.
func (e Environment) Extend() Environment {
	return e.scopes.Push(e.handle)
}

// Enclosing returns the parent scope; ok is false for the global scope.
func (e Environment) Enclosing() (Environment, bool) {
	parent := e.scopes.records[e.handle].enclosing
	if parent == NoScope {
		return Environment{}, false
	}
	return Environment{scopes: e.scopes, handle: parent}, true
}

// Define inserts or overwrites a binding in this scope only.
func (e Environment) Define(name string, value Value) {
	e.scopes.records[e.handle].values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain.
func (e Environment) Get(name token.Token) (Value, error) {
	for h := e.handle; h != NoScope; h = e.scopes.records[h].enclosing {
		if v, ok := e.scopes.records[h].values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefinedVariable(name)
}

// Assign updates an existing binding in the first scope where it appears.
func (e Environment) Assign(name token.Token, value Value) error {
	for h := e.handle; h != NoScope; h = e.scopes.records[h].enclosing {
		rec := e.scopes.records[h]
		if _, ok := rec.values[name.Lexeme]; ok {
			rec.values[name.Lexeme] = value
			return nil
		}
	}
	return undefinedVariable(name)
}

// Has reports whether the binding exists anywhere in the scope chain.
func (e Environment) Has(name string) bool {
	for h := e.handle; h != NoScope; h = e.scopes.records[h].enclosing {
		if _, ok := e.scopes.records[h].values[name]; ok {
			return true
		}
	}
	return false
}

// HasInCurrentScope reports whether the binding exists in this scope.
func (e Environment) HasInCurrentScope(name string) bool {
	_, ok := e.scopes.records[e.handle].values[name]
	return ok
}

// Keys returns this scope's bindings in sorted order.
func (e Environment) Keys() []string {
	values := e.scopes.records[e.handle].values
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of this scope's bindings.
func (e Environment) Snapshot() map[string]Value {
	values := e.scopes.records[e.handle].values
	out := make(map[string]Value, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
