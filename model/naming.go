package model

import (
	"fmt"
	"strings"

	"github.com/gobuffalo/flect"
	"golang.org/x/text/language"
)

// DefaultCollectionName derives the conventional collection name for a root
// entity type when the schema document does not override it: the
// pluralized, snake-cased form of the type name (e.g. "Delivery" ->
// "deliveries"). The model-building collaborator is free to ignore this and
// supply an explicit name in EntityInfo.Collection; it exists for
// collaborators that want a sane default.
func DefaultCollectionName(entityType string) string {
	return flect.Pluralize(flect.Underscore(entityType))
}

// NormalizeAnalyzerLanguage validates and lowercases an ISO language tag for
// use in an analyzer name ("text_<lang>"). An empty tag is returned as-is
// (it selects the identity analyzer, per §6).
func NormalizeAnalyzerLanguage(tag string) (string, error) {
	if tag == "" {
		return "", nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("model: invalid analyzer language %q: %w", tag, err)
	}
	base, _ := t.Base()
	return strings.ToLower(base.String()), nil
}

// AnalyzerName returns the search-view analyzer name for a normalized
// language tag: "identity" for exact match, "text_<lang>" otherwise (§6).
func AnalyzerName(lang string) string {
	if lang == "" {
		return "identity"
	}
	return "text_" + lang
}

// SearchViewName returns the flex-search view name for a collection (§6).
func SearchViewName(collection string) string {
	return "flex_view_" + collection
}
