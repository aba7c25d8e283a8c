package canopy

import (
	"time"

	"github.com/google/uuid"
)

// TickEvent describes one recorded tick of one node instance. Events are
// delivered to the hook registered with WithTickHook, in tick order.
type TickEvent struct {
	ID       uuid.UUID
	Node     string
	Result   Result
	Duration time.Duration
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithTickHook registers fn to be called after every tick that produced a
// Result (ticks that error do not fire the hook). The hook runs on the
// ticking goroutine; keep it cheap.
func WithTickHook(fn func(TickEvent)) ContextOption {
	return func(c *Context) {
		c.onTick = fn
	}
}

// Context is the bookkeeping store every node instance registers itself
// with: display names, the active-ancestor stack used for parent
// attribution, the parent→children graph, and the last observed result per
// node. Name and graph entries describe the shape of the tree that existed
// and survive teardown; result entries survive too, for post-mortem reads.
//
// A Context is not safe for concurrent use. To share bookkeeping with
// another goroutine, or to read it while a tree is being ticked, take a
// Fork and hand that out instead.
type Context struct {
	names  map[uuid.UUID]string
	stack  []uuid.UUID
	graph  map[uuid.UUID][]uuid.UUID
	status map[uuid.UUID]Result
	onTick func(TickEvent)
}

// NewContext returns an empty bookkeeping store.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		names:  make(map[uuid.UUID]string),
		graph:  make(map[uuid.UUID][]uuid.UUID),
		status: make(map[uuid.UUID]Result),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fork returns an independent copy of the store. The child starts with a
// snapshot of the parent's current state; afterwards each side mutates its
// own copy and neither sees the other's writes.
func (c *Context) Fork() *Context {
	child := &Context{
		names:  make(map[uuid.UUID]string, len(c.names)),
		stack:  append([]uuid.UUID(nil), c.stack...),
		graph:  copyGraph(c.graph),
		status: make(map[uuid.UUID]Result, len(c.status)),
		onTick: c.onTick,
	}
	for id, name := range c.names {
		child.names[id] = name
	}
	for id, r := range c.status {
		child.status[id] = r
	}
	return child
}

// Roots returns the ordered identities registered without a parent. A tree
// built from a single root node yields exactly one entry.
func (c *Context) Roots() []uuid.UUID {
	return append([]uuid.UUID(nil), c.graph[uuid.Nil]...)
}

// Children returns the ordered child identities of id, in construction
// order.
func (c *Context) Children(id uuid.UUID) []uuid.UUID {
	return append([]uuid.UUID(nil), c.graph[id]...)
}

// Name returns the display name assigned to id at construction.
func (c *Context) Name(id uuid.UUID) (string, bool) {
	name, ok := c.names[id]
	return name, ok
}

// LastResult returns the most recent result observed for id. The second
// return is false if the node has never been ticked.
func (c *Context) LastResult(id uuid.UUID) (Result, bool) {
	r, ok := c.status[id]
	return r, ok
}

// enter registers a freshly minted node instance: it is named, attached
// under the current active ancestor, and becomes the active ancestor itself
// until exit drains it.
func (c *Context) enter(id uuid.UUID, name string) {
	c.names[id] = name
	parent := uuid.Nil
	if len(c.stack) > 0 {
		parent = c.stack[len(c.stack)-1]
	}
	c.graph[parent] = append(c.graph[parent], id)
	c.stack = append(c.stack, id)
}

// exit drains the active-ancestor stack down past id. Entries above id were
// left by children that are being torn down along with it.
func (c *Context) exit(id uuid.UUID) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i] == id {
			c.stack = c.stack[:i]
			return
		}
	}
}

func (c *Context) record(id uuid.UUID, name string, r Result, d time.Duration) {
	c.status[id] = r
	if c.onTick != nil {
		c.onTick(TickEvent{ID: id, Node: name, Result: r, Duration: d})
	}
}

// captureStack snapshots the active-ancestor stack. Parallel restores a
// child's snapshot before ticking it so lazily constructed grandchildren
// attach to the right branch.
func (c *Context) captureStack() []uuid.UUID {
	return append([]uuid.UUID(nil), c.stack...)
}

func (c *Context) restoreStack(stack []uuid.UUID) {
	c.stack = append([]uuid.UUID(nil), stack...)
}

// treeView is a frozen copy of the ancestry stack plus the graph. React
// keeps one per branch so each branch grows its own subtree without seeing
// the other's.
type treeView struct {
	stack []uuid.UUID
	graph map[uuid.UUID][]uuid.UUID
}

func (c *Context) capture() treeView {
	return treeView{stack: c.captureStack(), graph: copyGraph(c.graph)}
}

// restore installs a copy of v, so v itself stays frozen and may be
// restored again later.
func (c *Context) restore(v treeView) {
	c.stack = append([]uuid.UUID(nil), v.stack...)
	c.graph = copyGraph(v.graph)
}

func copyGraph(g map[uuid.UUID][]uuid.UUID) map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, len(g))
	for parent, children := range g {
		out[parent] = append([]uuid.UUID(nil), children...)
	}
	return out
}
