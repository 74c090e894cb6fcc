package runtime

import (
	"sort"

	"github.com/edwingeng/deque"
)

// Scope holds the variables declared by one block.
type Scope map[string]Variable

// ScopeStack is the ordered stack of live block scopes. Lookups search from
// the innermost scope outward and declarations are unique across the whole
// stack, so inner blocks never shadow outer names.
type ScopeStack struct {
	frames deque.Deque
}

func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: deque.NewDeque()}
}

// Push opens a new empty innermost scope.
func (s *ScopeStack) Push() {
	s.frames.PushBack(Scope{})
}

// Pop discards the innermost scope and returns it.
func (s *ScopeStack) Pop() Scope {
	if s.frames.Empty() {
		return nil
	}
	return s.frames.PopBack().(Scope)
}

// Depth reports the number of live scopes.
func (s *ScopeStack) Depth() int {
	return s.frames.Len()
}

// Truncate pops scopes until at most depth remain.
func (s *ScopeStack) Truncate(depth int) {
	for s.frames.Len() > depth {
		s.frames.PopBack()
	}
}

// Current returns the innermost scope, opening one if the stack is empty.
func (s *ScopeStack) Current() Scope {
	if s.frames.Empty() {
		s.Push()
	}
	return s.frames.Back().(Scope)
}

// Lookup finds the most recently declared binding for name.
func (s *ScopeStack) Lookup(name string) (Variable, bool) {
	for i := s.frames.Len() - 1; i >= 0; i-- {
		scope := s.frames.Peek(i).(Scope)
		if v, ok := scope[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Declare binds name in the innermost scope. It fails if name is visible
// from any live scope.
func (s *ScopeStack) Declare(name string, v Variable) error {
	if _, exists := s.Lookup(name); exists {
		return ErrAlreadyDeclared(name)
	}
	s.Current()[name] = v
	return nil
}

// Names returns every visible name in sorted order.
func (s *ScopeStack) Names() []string {
	var names []string
	for i := 0; i < s.frames.Len(); i++ {
		for name := range s.frames.Peek(i).(Scope) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// State is everything a running program can observe: the built-in registry
// and the live scopes.
type State struct {
	Functions Registry
	Scopes    *ScopeStack
}

func NewState(functions Registry) *State {
	if functions == nil {
		functions = Registry{}
	}
	return &State{Functions: functions, Scopes: NewScopeStack()}
}
