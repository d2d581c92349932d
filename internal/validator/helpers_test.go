package validator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"confcheck/internal/schema"
)

// mustSchema parses and validates an inline schema document.
func mustSchema(t *testing.T, content string) *schema.Document {
	t.Helper()
	raw, err := schema.Parse([]byte(content), "")
	require.NoError(t, err)
	doc, err := ValidateSchema(raw)
	require.NoError(t, err)
	return doc
}

// sampleValues holds one runtime value of every kind.
var sampleValues = map[schema.Kind]any{
	schema.KindUndefined: schema.Undefined,
	schema.KindObject:    map[string]any{"a": 1},
	schema.KindBoolean:   true,
	schema.KindNumber:    1.5,
	schema.KindString:    "s",
	schema.KindSymbol:    schema.Symbol{Description: "id"},
	schema.KindFunction:  func() {},
}

func present(v any) schema.Attr {
	return schema.Attr{Value: v, Present: true}
}
