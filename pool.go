package loom

// focusToken captures a focused row across a recycle so focus can be
// reattached if the same index is realized again.
type focusToken struct {
	index  int
	widget Widget
}

// Virtualizer owns the realized containers for one presenter. It realizes
// rows on demand, recycles off-screen ones through a per-pass holding area,
// reuses containers in place where possible, and carries keyboard focus
// safely across recycling. No two presenters share a virtualizer.
type Virtualizer struct {
	source   ItemSource
	template ItemTemplate
	focus    *FocusScope

	realized map[int]*Container
	free     []*Container
	deferred *focusToken
}

// NewVirtualizer creates a virtualizer over the given source and template.
// focus may be nil when the host has no keyboard focus concept.
func NewVirtualizer(source ItemSource, template ItemTemplate, focus *FocusScope) *Virtualizer {
	return &Virtualizer{
		source:   source,
		template: template,
		focus:    focus,
		realized: make(map[int]*Container),
	}
}

// ContainerAt returns the realized container for a row, if any.
func (v *Virtualizer) ContainerAt(index int) (*Container, bool) {
	c, ok := v.realized[index]
	return c, ok
}

// RealizedCount returns how many containers are currently attached.
func (v *Virtualizer) RealizedCount() int { return len(v.realized) }

// FreeCount returns how many detached containers wait in the general pool.
func (v *Virtualizer) FreeCount() int { return len(v.free) }

// RealizedIndexes returns the attached row indices in no particular order.
func (v *Virtualizer) RealizedIndexes() []int {
	out := make([]int, 0, len(v.realized))
	for idx := range v.realized {
		out = append(out, idx)
	}
	return out
}

// RecycleAll detaches every realized container. Used on full reset and on
// template change.
func (v *Virtualizer) RecycleAll() {
	p := v.BeginPass(false)
	for idx := range v.realized {
		p.Recycle(idx)
	}
	p.End()
}

// rebind re-applies the row's current data to an already-realized container
// without recycling it. Used for in-place Replace projection.
func (v *Virtualizer) rebind(index int) {
	c, ok := v.realized[index]
	if !ok {
		return
	}
	v.template.Bind(c.widget, v.source.Item(index), index)
	c.needsMeasure = true
}

func (v *Virtualizer) release(c *Container) {
	c.bound = false
	if r, ok := c.widget.(Poolable); ok {
		r.Reset()
	}
	v.free = append(v.free, c)
}

// RenderPass is the transient scope for one realize/recycle cycle, either a
// render pass or one change projection. Containers recycled during the pass are
// held by index until End, so a row recycled and re-requested in the same
// pass gets its container back by identity instead of a rebuilt one.
// Holding the scratch state in an explicit pass object, not on the
// virtualizer, is what keeps passes non-reentrant by construction.
type RenderPass struct {
	v      *Virtualizer
	held   map[int]*Container
	rebind bool
}

// BeginPass opens a pass. rebind forces already-realized containers to be
// rebound on Realize; hosts set it for the first pass after a data-affecting
// change.
func (v *Virtualizer) BeginPass(rebind bool) *RenderPass {
	return &RenderPass{v: v, held: make(map[int]*Container), rebind: rebind}
}

// Realize attaches a container for the row and returns it. Already-realized
// rows are reused in place (rebound only when the pass demands it); then the
// holding area is tried by identity, then the general pool, then a fresh
// build. Out-of-range indices return nil; callers pre-validate against the
// source count in the normal path.
func (p *RenderPass) Realize(index int) *Container {
	v := p.v
	if index < 0 || index >= v.source.Count() {
		return nil
	}
	if c, ok := v.realized[index]; ok {
		if p.rebind {
			v.template.Bind(c.widget, v.source.Item(index), index)
			c.needsMeasure = true
		}
		return c
	}

	var c *Container
	fresh := true
	if hc, ok := p.held[index]; ok {
		// same row recycled earlier in this pass; hand it back untouched
		delete(p.held, index)
		c = hc
		fresh = p.rebind
	} else if n := len(v.free); n > 0 {
		c = v.free[n-1]
		v.free = v.free[:n-1]
	} else {
		c = &Container{widget: v.template.Build()}
	}

	c.index = index
	c.bound = true
	if fresh {
		v.template.Bind(c.widget, v.source.Item(index), index)
		c.needsMeasure = true
	}
	v.realized[index] = c

	if t := v.deferred; t != nil && t.index == index {
		v.deferred = nil
		if t.widget == c.widget {
			v.focus.SetFocus(t.widget)
		} else if f, ok := c.widget.(Focusable); ok {
			v.focus.SetFocus(f)
		}
	}
	return c
}

// Recycle detaches the container for a row into the holding area. If the
// container's widget holds keyboard focus, a deferred-focus token is
// captured and focus is handed to the owning control (or cleared) before
// the detach, so focus is never left on a detached widget. Returns false
// for rows that are not realized.
func (p *RenderPass) Recycle(index int) bool {
	v := p.v
	c, ok := v.realized[index]
	if !ok {
		return false
	}
	if v.focus.Holds(c.widget) {
		v.deferred = &focusToken{index: index, widget: c.widget}
		debugf("deferring focus for recycled row %d", index)
		v.focus.ToOwner()
	}
	c.bound = false
	delete(v.realized, index)
	p.held[index] = c
	return true
}

// RecycleOutside recycles every realized row outside [first, lastExclusive).
func (p *RenderPass) RecycleOutside(first, lastExclusive int) {
	for idx := range p.v.realized {
		if idx < first || idx >= lastExclusive {
			p.Recycle(idx)
		}
	}
}

// shiftFrom shifts every realized and held index >= start by delta. Used by
// change projection for insert/remove remaps; containers are neither
// destroyed nor rebuilt.
func (p *RenderPass) shiftFrom(start, delta int) {
	if delta == 0 {
		return
	}
	v := p.v
	remapped := make(map[int]*Container, len(v.realized))
	for idx, c := range v.realized {
		if idx >= start {
			idx += delta
			c.index = idx
		}
		remapped[idx] = c
	}
	v.realized = remapped

	if len(p.held) > 0 {
		heldRemapped := make(map[int]*Container, len(p.held))
		for idx, c := range p.held {
			if idx >= start {
				idx += delta
				c.index = idx
			}
			heldRemapped[idx] = c
		}
		p.held = heldRemapped
	}

	if t := v.deferred; t != nil && t.index >= start {
		t.index += delta
	}
}

// dropHeld flushes holding-area entries inside [first, lastExclusive)
// straight to the general pool; their index identity is gone.
func (p *RenderPass) dropHeld(first, lastExclusive int) {
	for idx, c := range p.held {
		if idx >= first && idx < lastExclusive {
			delete(p.held, idx)
			p.v.release(c)
		}
	}
	if t := p.v.deferred; t != nil && t.index >= first && t.index < lastExclusive {
		p.v.deferred = nil
	}
}

// End flushes unclaimed holding-area containers into the general pool.
func (p *RenderPass) End() {
	for idx, c := range p.held {
		delete(p.held, idx)
		p.v.release(c)
	}
}
