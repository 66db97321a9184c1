// Package compctx implements the Compilation Context (component C):
// variable-scope management, the pre-execution queue, and read/write
// collection tracking shared across one compound query.
package compctx

import (
	"fmt"

	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/ir"
)

type frameKind int

const (
	transientKind frameKind = iota
	queryResultKind
)

// frame is one link of the persistent scope chain (§9 "Context cloning" —
// a linked list of frames gives isolation without copying the whole map on
// every introduceVariable).
type frame struct {
	varID  ir.VariableID
	name   string
	kind   frameKind
	parent *frame
}

// PreExecQuery is one compiled pre-execution query plus its optional result
// binding name and opaque validator (§3.3).
type PreExecQuery struct {
	Fragment      frag.Fragment
	ResultBinding string // "" if the query's result is not bound to a name
	Validator     any
}

// Shared is the state every Context descended from the same root compile
// call mutates in common: the fresh-name allocator, the pre-execution
// queue, and the read/write collection accumulators (§4.C, §5 "compilation
// context is shared by construction only along the parent-to-child call
// chain").
type Shared struct {
	Builder          *frag.Builder
	PreExec          []PreExecQuery
	ReadCollections  map[string]struct{}
	WriteCollections map[string]struct{}
}

func NewShared() *Shared {
	return &Shared{
		Builder:          frag.NewBuilder(),
		ReadCollections:  map[string]struct{}{},
		WriteCollections: map[string]struct{}{},
	}
}

func (s *Shared) TrackRead(collection string)  { s.ReadCollections[collection] = struct{}{} }
func (s *Shared) TrackWrite(collection string) { s.WriteCollections[collection] = struct{}{} }

// Context is the immutable, per-scope compilation context. Cloning (via
// IntroduceVariable / AddPreExecuteQuery / NewPreExecContext) never mutates the receiver — every
// operation returns a new Context, so concurrent sub-compilations sharing a
// Shared can never observe each other's transient scope (§5).
type Context struct {
	top    *frame
	shared *Shared
}

// New creates the root context for a fresh compound query.
func New() *Context {
	return &Context{shared: NewShared()}
}

func (c *Context) Shared() *Shared { return c.shared }

func (c *Context) lookup(id ir.VariableID) (*frame, bool) {
	for f := c.top; f != nil; f = f.parent {
		if f.varID == id {
			return f, true
		}
	}
	return nil, false
}

// IntroduceVariable clones the context with an added mapping from v to a
// fresh fragment variable name; it fails if v is already present in scope
// (§4.C operation 1, §3.1 invariant 2).
func (c *Context) IntroduceVariable(v *ir.Variable) (*Context, error) {
	if _, ok := c.lookup(v.ID); ok {
		return nil, fmt.Errorf("compctx: variable %q introduced twice", v.Label)
	}
	name := c.shared.Builder.Variable(v.Label)
	return &Context{
		top:    &frame{varID: v.ID, name: name, kind: transientKind, parent: c.top},
		shared: c.shared,
	}, nil
}

// GetVariable returns the fragment variable name bound to v; it fails with
// "variable used but not introduced" otherwise (§4.C operation 4).
func (c *Context) GetVariable(v *ir.Variable) (string, error) {
	f, ok := c.lookup(v.ID)
	if !ok {
		return "", fmt.Errorf("compctx: variable %q used but not introduced", v.Label)
	}
	return f.name, nil
}

// AddPreExecuteQuery appends a compiled pre-exec fragment to the shared
// queue and, if resultVar is given, returns a clone with resultVar bound to
// a fresh query-result variable name (§4.C operation 2). Callers compile
// the pre-exec query's fragment themselves, in a context obtained from
// NewPreExecContext, before calling this method — compctx cannot invoke the
// lowering pass directly without an import cycle, so compiling the pre-exec
// query and appending it to preExec are deliberately split across caller
// and callee.
func (c *Context) AddPreExecuteQuery(fragment frag.Fragment, resultVar *ir.Variable, validator any) (*Context, error) {
	binding := ""
	if resultVar != nil {
		binding = c.shared.Builder.QueryResultVariable(resultVar.Label)
	}
	c.shared.PreExec = append(c.shared.PreExec, PreExecQuery{
		Fragment:      fragment,
		ResultBinding: binding,
		Validator:     validator,
	})
	if resultVar == nil {
		return c, nil
	}
	if _, ok := c.lookup(resultVar.ID); ok {
		return nil, fmt.Errorf("compctx: result variable %q introduced twice", resultVar.Label)
	}
	return &Context{
		top:    &frame{varID: resultVar.ID, name: binding, kind: queryResultKind, parent: c.top},
		shared: c.shared,
	}, nil
}

// NewPreExecContext produces a fresh context that inherits only
// query-result variables from the parent — the transient scope of the
// parent is hidden — while continuing to share Shared's allocator,
// pre-exec queue and collection sets (§4.C operation 3).
func (c *Context) NewPreExecContext() *Context {
	var top *frame
	// Walk oldest-to-newest so the rebuilt chain preserves relative order;
	// collect into a slice first since frame links point toward the root.
	var chain []*frame
	for f := c.top; f != nil; f = f.parent {
		chain = append(chain, f)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		f := chain[i]
		if f.kind != queryResultKind {
			continue
		}
		top = &frame{varID: f.varID, name: f.name, kind: queryResultKind, parent: top}
	}
	return &Context{top: top, shared: c.shared}
}
