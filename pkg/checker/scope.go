package checker

type scope struct {
	parent *scope
	names  map[string]bool
}

func (c *Checker) push() {
	c.scope = &scope{parent: c.scope, names: make(map[string]bool)}
}

func (c *Checker) pop() {
	if c.scope != nil {
		c.scope = c.scope.parent
	}
}

func (c *Checker) declare(name string) (fresh bool) {
	if c.scope.names[name] {
		return false
	}
	c.scope.names[name] = true
	return true
}

// visible reports whether name resolves from the current position. Inside a
// function body the call happens later, so any top-level declaration counts.
func (c *Checker) visible(name string) bool {
	for s := c.scope; s != nil; s = s.parent {
		if s.names[name] {
			return true
		}
	}
	if c.globals[name] {
		return true
	}
	return c.funcDepth > 0 && c.hoisted[name]
}
