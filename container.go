package loom

// Widget is the minimal contract a realized row's visual implements. A
// widget renders itself to a (possibly multi-line, possibly ANSI-styled)
// string; the engine owns where that string lands.
type Widget interface {
	View() string
}

// Focusable is implemented by widgets that track keyboard focus state.
type Focusable interface {
	Widget
	Focus()
	Blur()
	IsFocused() bool
}

// Resizable is implemented by widgets that wrap or truncate to a width.
// Presenters push the viewport width into realized widgets before measuring.
type Resizable interface {
	Widget
	SetWidth(cells int)
}

// Poolable widgets are cleared before returning to the general free pool.
type Poolable interface {
	Widget
	Reset()
}

// ItemTemplate builds and binds row widgets. Build constructs an unbound
// widget; Bind applies one item's data to it. There is no unbind: a recycled
// widget simply stops being updated until its next Bind. Binding failures
// inside template code are the caller's responsibility.
type ItemTemplate interface {
	Build() Widget
	Bind(w Widget, item any, index int)
}

type templateFuncs struct {
	build func() Widget
	bind  func(Widget, any, int)
}

func (t templateFuncs) Build() Widget               { return t.build() }
func (t templateFuncs) Bind(w Widget, v any, i int) { t.bind(w, v, i) }

// Template creates an ItemTemplate from a pair of funcs.
func Template(build func() Widget, bind func(w Widget, item any, index int)) ItemTemplate {
	return templateFuncs{build: build, bind: bind}
}

// Container pairs a pooled widget with the row index it is currently bound
// to. Containers are owned exclusively by the virtualizer that realized
// them; the item itself stays owned by the caller.
type Container struct {
	widget Widget
	index  int
	bound  bool

	// needsMeasure is set on every bind so the next render pass refreshes
	// the cached height for this row.
	needsMeasure bool
}

// Widget returns the visual bound to this container.
func (c *Container) Widget() Widget { return c.widget }

// Index returns the row index the container is currently bound to, or -1
// while it sits in a pool.
func (c *Container) Index() int {
	if !c.bound {
		return -1
	}
	return c.index
}

// View renders the bound widget.
func (c *Container) View() string {
	if c.widget == nil {
		return ""
	}
	return c.widget.View()
}
