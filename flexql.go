// Package flexql compiles a query-tree intermediate representation (see
// package ir) into a compound query for a native document/graph query
// dialect: an ordered list of pre-execution queries followed by a main
// fragment, each annotated with bound parameters and read/write collection
// sets.
package flexql

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/internal/lower"
	"github.com/flexgraphdb/flexql/internal/rewrite"
	"github.com/flexgraphdb/flexql/ir"
	"github.com/flexgraphdb/flexql/model"
)

// Fragment is the serializable projection of internal/frag.Fragment that
// crosses the package boundary (§6 "Output — compound query").
type Fragment struct {
	Text     string         `json:"text"`
	Bindings map[string]any `json:"bindings"`
}

func toFragment(f frag.Fragment) Fragment {
	return Fragment{Text: f.Text, Bindings: f.Bindings}
}

// PreExecQuery is one pre-execution query of a CompoundQuery: its own
// fragment, an optional result binding name visible to later queries, and
// an opaque (to the compiler) result validator.
type PreExecQuery struct {
	Fragment      Fragment `json:"fragment"`
	ResultBinding string   `json:"resultBinding,omitempty"`
	Validator     any      `json:"validator,omitempty"`
}

// CompoundQuery bundles the ordered pre-execution queries, the main
// fragment, and the union of read/write collection names (§3.3, §6).
type CompoundQuery struct {
	PreExec          []PreExecQuery `json:"preExec,omitempty"`
	Main             Fragment       `json:"main"`
	ReadCollections  []string       `json:"readCollections,omitempty"`
	WriteCollections []string       `json:"writeCollections,omitempty"`
}

// Compiler is the top-level entry point: it owns the schema metadata
// collaborator, the lowering pass, and the ambient stack (logging, cache,
// tracing). A Compiler has no per-compile mutable state, so it is safe for
// concurrent use by CompileMany and by independent callers alike (§5).
type Compiler struct {
	schema  model.Schema
	lowerer *lower.Lowerer
	logger  *zap.Logger
	cache   *planCache
}

// Option configures a Compiler at construction time.
type Option func(*Compiler)

// WithLogger overrides the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// NewCompiler builds a Compiler from a schema metadata collaborator and a
// validated, normalized Config.
func NewCompiler(schema model.Schema, cfg Config, opts ...Option) (*Compiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Compiler{
		schema:  schema,
		lowerer: lower.New(schema, lower.Config{ProjectionIndirection: cfg.ProjectionIndirection}),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.CacheSize > 0 {
		cache, err := newPlanCache(cfg.CacheSize, cfg.CacheRedisAddr)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Compile lowers root into a CompoundQuery. It is synchronous and
// single-threaded per call; concurrent calls share no mutable state beyond
// the read-only schema and lowering configuration (§5).
func (c *Compiler) Compile(ctx context.Context, root ir.Node) (CompoundQuery, error) {
	start := time.Now()
	spanCtx, span := c.spanStart(ctx, "flexql.Compile")
	defer span.End()

	if c.cache != nil {
		if key, err := planCacheKey(root); err == nil {
			if cached, ok := c.cache.get(key); ok {
				c.logger.Debug("compile cache hit", zap.String("key", key))
				return cached, nil
			}
		}
	}

	cctx := compctx.New()
	main, err := c.lowerRoot(spanCtx, root, cctx)
	if err != nil {
		span.Error(err)
		return CompoundQuery{}, err
	}

	shared := cctx.Shared()
	compound := CompoundQuery{
		Main:             toFragment(main),
		ReadCollections:  sortedKeys(shared.ReadCollections),
		WriteCollections: sortedKeys(shared.WriteCollections),
	}
	for _, pe := range shared.PreExec {
		compound.PreExec = append(compound.PreExec, PreExecQuery{
			Fragment:      toFragment(pe.Fragment),
			ResultBinding: pe.ResultBinding,
			Validator:     pe.Validator,
		})
	}

	c.logger.Debug("compiled compound query",
		zap.Int("preExecCount", len(compound.PreExec)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if c.cache != nil {
		if key, err := planCacheKey(root); err == nil {
			c.cache.put(key, compound)
		}
	}
	return compound, nil
}

// CompileMany compiles each of queries independently and concurrently. Each
// query gets its own compctx.Context, so there is no shared mutable state
// across queries beyond the read-only schema and lowering configuration
// (§5's concurrency model). The first error cancels the remaining compiles
// and is returned; partial results are discarded.
func (c *Compiler) CompileMany(ctx context.Context, queries []ir.Node) ([]CompoundQuery, error) {
	results := make([]CompoundQuery, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, root := range queries {
		i, root := i, root
		g.Go(func() error {
			cq, err := c.Compile(gctx, root)
			if err != nil {
				return err
			}
			results[i] = cq
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// lowerRoot applies top-level assignment hoisting (§4.E rewrite 1) before
// lowering: VariableAssignment nodes at root's direct-value position become
// LET lines ahead of the final RETURN, rather than nested FIRST(...)
// subqueries.
func (c *Compiler) lowerRoot(ctx context.Context, root ir.Node, cctx *compctx.Context) (frag.Fragment, error) {
	resultNode, lifted := rewrite.HoistAssignments(root)
	if len(lifted) == 0 {
		return c.lowerer.Lower(resultNode, cctx)
	}

	var lines []frag.Fragment
	letCtx := cctx
	for _, va := range lifted {
		if err := ctx.Err(); err != nil {
			return frag.Fragment{}, err
		}
		valueFrag, err := c.lowerer.Lower(va.ValueNode, letCtx)
		if err != nil {
			return frag.Fragment{}, err
		}
		nextCtx, err := letCtx.IntroduceVariable(va.Variable)
		if err != nil {
			return frag.Fragment{}, err
		}
		name, err := nextCtx.GetVariable(va.Variable)
		if err != nil {
			return frag.Fragment{}, err
		}
		lines = append(lines, frag.Combine("LET "+name+" = "+valueFrag.Text, valueFrag))
		letCtx = nextCtx
	}
	resultFrag, err := c.lowerer.Lower(resultNode, letCtx)
	if err != nil {
		return frag.Fragment{}, err
	}
	lines = append(lines, frag.Combine("RETURN "+resultFrag.Text, resultFrag))
	return frag.Lines(lines), nil
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
