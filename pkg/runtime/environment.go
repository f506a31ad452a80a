package runtime

import (
	"fmt"
	"sort"

	"dscript/interpreter-go/pkg/ast"
)

// Frame is one lexical scope's bindings, tagged with the node that opened it.
type Frame struct {
	owner  ast.Node
	values map[string]*Cell
}

// Owner reports the node that opened the frame (nil for the global frame).
func (f *Frame) Owner() ast.Node {
	return f.owner
}

// ScopeStack is the ordered list of active frames, innermost last. The
// bottom frame is the global scope and is never popped.
type ScopeStack struct {
	frames []*Frame
}

// NewScopeStack creates a stack holding only the global frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []*Frame{{values: make(map[string]*Cell)}}}
}

// Open pushes an empty frame tagged with owner.
func (s *ScopeStack) Open(owner ast.Node) *Frame {
	frame := &Frame{owner: owner, values: make(map[string]*Cell)}
	s.frames = append(s.frames, frame)
	return frame
}

// OpenWith pushes a frame pre-populated with bindings.
func (s *ScopeStack) OpenWith(owner ast.Node, bindings map[string]*Cell) *Frame {
	frame := s.Open(owner)
	for name, cell := range bindings {
		frame.values[name] = cell
	}
	return frame
}

// Close pops frames down to and including the innermost frame tagged owner.
// Frames above it are ones left open by an abnormal exit.
func (s *ScopeStack) Close(owner ast.Node) error {
	for i := len(s.frames) - 1; i >= 1; i-- {
		if s.frames[i].owner == owner {
			s.frames = s.frames[:i]
			return nil
		}
	}
	return Errorf(ErrInternal, "no open scope for %s", describeOwner(owner))
}

// Reset discards every frame except the global one.
func (s *ScopeStack) Reset() {
	s.frames = s.frames[:1]
}

// Depth is the number of active frames including the global frame.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Lookup searches frames from innermost to outermost.
func (s *ScopeStack) Lookup(name string) (*Cell, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if cell, ok := s.frames[i].values[name]; ok {
			return cell, nil
		}
	}
	return nil, Errorf(ErrUndefinedVariable, "undefined variable '%s'", name)
}

// Bind inserts or overwrites a binding in the innermost frame.
func (s *ScopeStack) Bind(name string, cell *Cell) {
	s.frames[len(s.frames)-1].values[name] = cell
}

// Snapshot flattens every visible binding into one map, inner frames
// shadowing outer ones. The cells themselves are shared, not copied.
func (s *ScopeStack) Snapshot() map[string]*Cell {
	out := make(map[string]*Cell)
	for _, frame := range s.frames {
		for name, cell := range frame.values {
			out[name] = cell
		}
	}
	return out
}

// GlobalNames returns the global frame's names in sorted order.
func (s *ScopeStack) GlobalNames() []string {
	keys := make([]string, 0, len(s.frames[0].values))
	for k := range s.frames[0].values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describeOwner(owner ast.Node) string {
	if owner == nil {
		return "<global>"
	}
	return fmt.Sprintf("%s at %s", owner.NodeType(), owner.Span())
}
