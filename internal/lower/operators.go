package lower

import (
	"strings"

	"github.com/flexgraphdb/flexql/compileerr"
	"github.com/flexgraphdb/flexql/internal/compctx"
	"github.com/flexgraphdb/flexql/internal/frag"
	"github.com/flexgraphdb/flexql/internal/rewrite"
	"github.com/flexgraphdb/flexql/ir"
	"github.com/flexgraphdb/flexql/model"
)

// languageOperatorToken maps each LanguageOperator to the dialect's actual
// search function (§6's glossary: STARTS_WITH, TOKENS, PHRASE). CONTAINS_ANY_WORD
// matches on the tokenized value; CONTAINS_PREFIX reuses STARTS_WITH, since a
// prefix match over search terms is the same predicate as an exact-field
// prefix match; CONTAINS_PHRASE uses PHRASE (§8 scenario S3).
var languageOperatorToken = map[ir.LanguageOperator]string{
	ir.OpQuickSearchStartsWith:      "STARTS_WITH",
	ir.OpQuickSearchContainsAnyWord: "TOKENS",
	ir.OpQuickSearchContainsPrefix:  "STARTS_WITH",
	ir.OpQuickSearchContainsPhrase:  "PHRASE",
}

var directBinaryTokens = map[ir.BinaryOperator]string{
	ir.OpAnd: "&&", ir.OpOr: "||", ir.OpEqual: "==", ir.OpUnequal: "!=",
	ir.OpLessThan: "<", ir.OpLessThanOrEqual: "<=",
	ir.OpGreaterThan: ">", ir.OpGreaterThanOrEqual: ">=",
	ir.OpIn: "IN", ir.OpAdd: "+", ir.OpSubtract: "-",
	ir.OpMultiply: "*", ir.OpDivide: "/", ir.OpModulo: "%",
}

// lowerBinaryOp implements §4.D.2: directly-mapped operators emit their
// native token; CONTAINS/STARTS_WITH/ENDS_WITH/LIKE/APPEND/PREPEND get
// bespoke lowerings.
func (lw *Lowerer) lowerBinaryOp(n *ir.BinaryOp, ctx *compctx.Context) (frag.Fragment, error) {
	lhs, err := lw.Lower(n.LHS, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	rhs, err := lw.Lower(n.RHS, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	b := ctx.Shared().Builder

	if tok, ok := directBinaryTokens[n.Op]; ok {
		return frag.Combine("("+lhs.Text+" "+tok+" "+rhs.Text+")", lhs, rhs), nil
	}

	switch n.Op {
	case ir.OpContains:
		percent := b.Value("%")
		return frag.Combine(
			"("+lhs.Text+" LIKE CONCAT("+percent.Text+", "+rhs.Text+", "+percent.Text+"))",
			lhs, rhs, percent,
		), nil

	case ir.OpStartsWith:
		baseText := "(LEFT(" + lhs.Text + ", LENGTH(" + rhs.Text + ")) == " + rhs.Text + ")"
		if prefix, ok := literalString(n.RHS); ok {
			fast := fastStartsWith(lhs.Text, prefix, b)
			return frag.Combine("("+fast.Text+" && "+baseText+")", lhs, rhs, fast), nil
		}
		return frag.Combine(baseText, lhs, rhs), nil

	case ir.OpEndsWith:
		return frag.Combine("(RIGHT("+lhs.Text+", LENGTH("+rhs.Text+")) == "+rhs.Text+")", lhs, rhs), nil

	case ir.OpLike:
		return lw.lowerLike(n, lhs, rhs, b)

	case ir.OpAppend:
		return frag.Combine("CONCAT("+lhs.Text+", "+rhs.Text+")", lhs, rhs), nil
	case ir.OpPrepend:
		return frag.Combine("CONCAT("+rhs.Text+", "+lhs.Text+")", lhs, rhs), nil

	default:
		return frag.Fragment{}, compileerr.New(compileerr.UnsupportedOperator, n, "lower: unsupported binary operator %s", n.Op)
	}
}

func (lw *Lowerer) lowerLike(n *ir.BinaryOp, lhs, rhs frag.Fragment, b *frag.Builder) (frag.Fragment, error) {
	pattern, ok := literalString(n.RHS)
	if !ok {
		return frag.Combine("LIKE("+lhs.Text+", "+rhs.Text+", true)", lhs, rhs), nil
	}
	analysis := rewrite.AnalyzeLikePattern(pattern)
	switch {
	case analysis.WhollyLiteral:
		return equalsIgnoreCase(lhs, pattern, b), nil
	case analysis.SimplePrefixThenPercent:
		fast := fastStartsWith(lhs.Text, analysis.Prefix, b)
		return frag.Combine(fast.Text, lhs, fast), nil
	default:
		fast := fastStartsWith(lhs.Text, analysis.Prefix, b)
		slowText := "LIKE(" + lhs.Text + ", " + rhs.Text + ", true)"
		return frag.Combine("("+fast.Text+" && "+slowText+")", lhs, rhs, fast), nil
	}
}

func literalString(node ir.Node) (string, bool) {
	lit, ok := node.(*ir.Literal)
	if !ok {
		return "", false
	}
	s, ok := lit.Value.(string)
	return s, ok
}

// fastStartsWith implements the index-friendly range clamp described in
// §4.D.2: UPPER(prefix) is the smallest value equal-ignore-case to prefix,
// LOWER(max) the largest such upper bound, so every case variant of prefix
// falls inside the range regardless of the collator's own sort order.
//
// lhsText is spliced into the returned text as a plain string rather than
// merged as a fragment, so callers that also need lhs's own bindings merge
// it exactly once at their own outer Combine.
func fastStartsWith(lhsText, prefix string, b *frag.Builder) frag.Fragment {
	if prefix == "" {
		return frag.Combine("IS_STRING(" + lhsText + ")")
	}
	max := prefix + string(rune(0x10FFFF))
	prefixVal := b.Value(prefix)
	maxVal := b.Value(max)
	return frag.Combine(
		"("+lhsText+" >= UPPER("+prefixVal.Text+") && "+lhsText+" < LOWER("+maxVal.Text+"))",
		prefixVal, maxVal,
	)
}

// equalsIgnoreCase implements §4.D.2's case-insensitive equality helper.
func equalsIgnoreCase(lhs frag.Fragment, value string, b *frag.Builder) frag.Fragment {
	if strings.ToLower(value) == strings.ToUpper(value) {
		v := b.Value(value)
		return frag.Combine(lhs.Text+" == "+v.Text, lhs, v)
	}
	v := b.Value(value)
	return frag.Combine(
		"("+lhs.Text+" >= UPPER("+v.Text+") && "+lhs.Text+" <= LOWER("+v.Text+"))",
		lhs, v,
	)
}

func (lw *Lowerer) lowerUnaryOp(n *ir.UnaryOp, ctx *compctx.Context) (frag.Fragment, error) {
	value, err := lw.Lower(n.Value, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	switch n.Op {
	case ir.OpNot:
		return frag.Combine("!("+value.Text+")", value), nil
	case ir.OpJSONStringify:
		return frag.Combine("JSON_STRINGIFY("+value.Text+")", value), nil
	default:
		return frag.Fragment{}, compileerr.New(compileerr.UnsupportedOperator, n, "lower: unsupported unary operator %s", n.Op)
	}
}

func (lw *Lowerer) lowerConditional(n *ir.Conditional, ctx *compctx.Context) (frag.Fragment, error) {
	cond, err := lw.Lower(n.Cond, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	then, err := lw.Lower(n.Then, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	els, err := lw.Lower(n.Else, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	return frag.Combine("("+cond.Text+" ? "+then.Text+" : "+els.Text+")", cond, then, els), nil
}

func (lw *Lowerer) lowerTypeCheck(n *ir.TypeCheck, ctx *compctx.Context) (frag.Fragment, error) {
	value, err := lw.Lower(n.Value, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	switch n.BasicType {
	case ir.TypeScalar:
		return frag.Combine(
			"(IS_BOOL("+value.Text+") || IS_NUMBER("+value.Text+") || IS_STRING("+value.Text+"))",
			value,
		), nil
	case ir.TypeList:
		return frag.Combine("IS_LIST("+value.Text+")", value), nil
	case ir.TypeObject:
		return frag.Combine("IS_OBJECT("+value.Text+")", value), nil
	case ir.TypeNull:
		return frag.Combine("IS_NULL("+value.Text+")", value), nil
	default:
		return frag.Fragment{}, compileerr.New(compileerr.MalformedIR, n, "lower: unknown basic type %d", int(n.BasicType))
	}
}

// lowerOperatorWithLanguage emits an ANALYZER(...)-wrapped search predicate
// using text_<lang> for language-aware operators, or the identity analyzer
// for QUICKSEARCH_STARTS_WITH with no language (§4.D).
func (lw *Lowerer) lowerOperatorWithLanguage(n *ir.OperatorWithLanguage, ctx *compctx.Context) (frag.Fragment, error) {
	lhs, err := lw.Lower(n.LHS, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	rhs, err := lw.Lower(n.RHS, ctx)
	if err != nil {
		return frag.Fragment{}, err
	}
	fn, ok := languageOperatorToken[n.Op]
	if !ok {
		return frag.Fragment{}, compileerr.New(compileerr.UnsupportedOperator, n, "lower: unsupported language operator %s", n.Op)
	}
	analyzer := model.AnalyzerName(n.Language)
	predicate := fn + "( " + lhs.Text + ", " + rhs.Text + ")"
	return frag.Combine("ANALYZER( "+predicate+", "+analyzer+")", lhs, rhs), nil
}
