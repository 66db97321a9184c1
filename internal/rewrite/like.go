package rewrite

import "strings"

// LikePatternAnalysis classifies a literal LIKE pattern so BinaryOp LIKE
// lowering (§4.D.2) can pick the fast range query, the slow LIKE check, or
// both.
type LikePatternAnalysis struct {
	// WhollyLiteral is true when the pattern has no % or _ wildcard at all.
	WhollyLiteral bool
	// SimplePrefixThenPercent is true when the pattern is exactly a literal
	// prefix followed by one trailing %, with no other wildcards.
	SimplePrefixThenPercent bool
	// Prefix is the literal run before the first wildcard (possibly empty,
	// possibly the whole pattern when WhollyLiteral).
	Prefix string
}

// AnalyzeLikePattern inspects a literal LIKE pattern string.
func AnalyzeLikePattern(pattern string) LikePatternAnalysis {
	idx := strings.IndexAny(pattern, "%_")
	if idx == -1 {
		return LikePatternAnalysis{WhollyLiteral: true, Prefix: pattern}
	}
	prefix := pattern[:idx]
	simple := idx == len(pattern)-1 && pattern[idx] == '%'
	return LikePatternAnalysis{Prefix: prefix, SimplePrefixThenPercent: simple}
}
