package scene

// Group is a container node the simulations attach their primitives to.
// Visibility is hierarchical: a primitive is effectively visible only while
// the whole group chain above it is.
type Group struct {
	ID       string
	visible  bool
	prims    []Primitive
	children []*Group
	parent   *Group
}

// NewGroup creates a detached root group, visible by default.
func NewGroup(id string) *Group {
	return &Group{ID: id, visible: true}
}

// NewChild creates and attaches a child group.
func (g *Group) NewChild(id string) *Group {
	c := &Group{ID: id, visible: true, parent: g}
	g.children = append(g.children, c)
	return c
}

// Add attaches a primitive to the group.
func (g *Group) Add(p Primitive) {
	g.prims = append(g.prims, p)
}

// SetVisible toggles the group and forwards the effective state to its
// primitives and children.
func (g *Group) SetVisible(v bool) {
	g.visible = v
	eff := g.Visible()
	for _, p := range g.prims {
		p.SetVisible(eff)
	}
	for _, c := range g.children {
		c.SetVisible(c.visible)
	}
}

// Visible reports the effective visibility including all ancestors.
func (g *Group) Visible() bool {
	for n := g; n != nil; n = n.parent {
		if !n.visible {
			return false
		}
	}
	return true
}

// Clear disposes all primitives and child groups but keeps the group
// attached. Used on vehicle-type rebuilds.
func (g *Group) Clear() {
	for _, p := range g.prims {
		p.Dispose()
	}
	g.prims = nil
	for _, c := range g.children {
		c.parent = nil
		c.Clear()
	}
	g.children = nil
}

// Dispose clears the group and detaches it from its parent.
func (g *Group) Dispose() {
	g.Clear()
	if g.parent != nil {
		for i, c := range g.parent.children {
			if c == g {
				g.parent.children = append(g.parent.children[:i], g.parent.children[i+1:]...)
				break
			}
		}
		g.parent = nil
	}
}
