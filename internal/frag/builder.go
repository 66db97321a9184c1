package frag

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/rs/xid"
)

// safeIdentifier is the character-class whitelist every unquoted
// identifier must match (§3.2, §8 property 3).
var safeIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsSafeIdentifier reports whether s may be emitted unquoted.
func IsSafeIdentifier(s string) bool {
	return safeIdentifier.MatchString(s)
}

// Builder is the single, shared allocator for one compound query's worth of
// fragments: it hands out unique parameter names for bound values and
// unique variable names for transient/query-result bindings, so names never
// collide across however many Fragments compose the final text (§4.B).
// Builder methods are the only place that allocates names; Fragment values
// themselves are immutable and side-effect free.
type Builder struct {
	paramSeq  int
	usedNames map[string]struct{}
}

func NewBuilder() *Builder {
	return &Builder{usedNames: map[string]struct{}{}}
}

// Text returns a raw fragment of known-safe compiler tokens (keywords,
// punctuation) — never user data.
func (b *Builder) Text(s string) Fragment {
	f := empty()
	f.Text = s
	return f
}

// Value binds v as a parameter and returns a placeholder fragment
// referencing it. Values are never inlined as source text (§8 property 2).
func (b *Builder) Value(v any) Fragment {
	name := "p" + strconv.Itoa(b.paramSeq)
	b.paramSeq++
	f := empty()
	f.Text = "@" + name
	f.Bindings[name] = v
	return f
}

// Identifier validates s against the safe-identifier whitelist and emits it
// verbatim; it fails the compilation otherwise (§3.2, §7 InvalidIdentifier).
func (b *Builder) Identifier(s string) (Fragment, error) {
	if !IsSafeIdentifier(s) {
		return Fragment{}, fmt.Errorf("frag: %q is not a safe identifier", s)
	}
	f := empty()
	f.Text = s
	return f, nil
}

// Collection is like Identifier but additionally marks the name as read by
// the fragment it produces (§4.B). Mutation lowering calls MarkWrite
// separately to reclassify a collection access as a write.
func (b *Builder) Collection(name string) (Fragment, error) {
	f, err := b.Identifier(name)
	if err != nil {
		return Fragment{}, fmt.Errorf("frag: %q is not a safe collection name: %w", name, err)
	}
	f.ReadCollections[name] = struct{}{}
	return f, nil
}

// MarkWrite reclassifies f's access to name from read to write. It is used
// by mutation lowering (CreateEntity, UpdateEntities, ...) after obtaining
// the collection fragment via Collection.
func MarkWrite(f Fragment, name string) Fragment {
	out := f.clone()
	delete(out.ReadCollections, name)
	out.WriteCollections[name] = struct{}{}
	return out
}

// Variable allocates a fresh transient variable name derived from label.
// When label (slugified) is not yet in use within this builder's scope it
// is used verbatim (so simple queries read as "FOR v IN ..." rather than
// "FOR v_8f3a1c2d IN ..."); on collision a collision-resistant suffix from
// rs/xid is appended.
func (b *Builder) Variable(label string) string {
	base := slug.Make(label)
	if base == "" {
		base = "v"
	}
	base = sanitizeForIdentifier(base)
	if _, used := b.usedNames[base]; !used {
		b.usedNames[base] = struct{}{}
		return base
	}
	name := base + "_" + xid.New().String()
	b.usedNames[name] = struct{}{}
	return name
}

// QueryResultVariable allocates a name usable as a cross-query result
// binding, visible to every later pre-execution query and the main query
// (§4.B, §4.C).
func (b *Builder) QueryResultVariable(label string) string {
	return b.Variable(label)
}

// sanitizeForIdentifier turns a slug (hyphen-separated lowercase words)
// into a safe identifier by swapping hyphens for underscores.
func sanitizeForIdentifier(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]byte{'v', '_'}, out...)
	}
	return string(out)
}
