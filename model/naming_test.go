package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexgraphdb/flexql/model"
)

func TestDefaultCollectionName_PluralizesAndSnakeCases(t *testing.T) {
	assert.Equal(t, "deliveries", model.DefaultCollectionName("Delivery"))
	assert.Equal(t, "orders", model.DefaultCollectionName("Order"))
}

func TestNormalizeAnalyzerLanguage_EmptyTagIsIdentity(t *testing.T) {
	got, err := model.NormalizeAnalyzerLanguage("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalizeAnalyzerLanguage_LowercasesBaseTag(t *testing.T) {
	got, err := model.NormalizeAnalyzerLanguage("EN-US")
	require.NoError(t, err)
	assert.Equal(t, "en", got)
}

func TestNormalizeAnalyzerLanguage_RejectsInvalidTag(t *testing.T) {
	_, err := model.NormalizeAnalyzerLanguage("???")
	assert.Error(t, err)
}

func TestAnalyzerName(t *testing.T) {
	assert.Equal(t, "identity", model.AnalyzerName(""))
	assert.Equal(t, "text_en", model.AnalyzerName("en"))
}

func TestSearchViewName(t *testing.T) {
	assert.Equal(t, "flex_view_orders", model.SearchViewName("orders"))
}
