package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Categories, 3)
	assert.Len(t, c.SubCategories, 18)
	assert.Len(t, c.Products, 46)
	assert.Len(t, c.Locations, 2)
	assert.Equal(t, "Pinturas Diamante", c.Business.Name)

	first := c.Products[0]
	assert.Equal(t, "auto-1", first.ID)
	assert.Equal(t, "automotriz", first.CategoryID)
	assert.Equal(t, "complementos-auto", first.SubCategoryID)
	assert.Nil(t, first.Price)
}

func TestParse_RejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "duplicated category",
			doc: `
categories:
  - { id: a, name: A, description: x }
  - { id: a, name: B, description: y }
`,
			wantErr: "duplicated category id",
		},
		{
			name: "subcategory with unknown category",
			doc: `
categories:
  - { id: a, name: A, description: x }
subcategories:
  - { id: s, category: b, name: S }
`,
			wantErr: "unknown category",
		},
		{
			name: "product in foreign subcategory",
			doc: `
categories:
  - { id: a, name: A, description: x }
  - { id: b, name: B, description: y }
subcategories:
  - { id: s, category: b, name: S }
products:
  - { id: p, category: a, subcategory: s, tag: T, name: P, description: d }
`,
			wantErr: "belongs to",
		},
		{
			name: "duplicated product",
			doc: `
categories:
  - { id: a, name: A, description: x }
subcategories:
  - { id: s, category: a, name: S }
products:
  - { id: p, category: a, subcategory: s, tag: T, name: P, description: d }
  - { id: p, category: a, subcategory: s, tag: T, name: Q, description: d }
`,
			wantErr: "duplicated product id",
		},
		{
			name: "negative price",
			doc: `
categories:
  - { id: a, name: A, description: x }
subcategories:
  - { id: s, category: a, name: S }
products:
  - { id: p, category: a, subcategory: s, tag: T, name: P, description: d, price: -1 }
`,
			wantErr: "negative price",
		},
		{
			name:    "unknown field",
			doc:     "colour: blue\n",
			wantErr: "failed to decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatches_IgnoresCaseAndAccents(t *testing.T) {
	assert.True(t, Matches("vinilicas", "Vinílicas"))
	assert.True(t, Matches("RAPIDO", "Esmalte Secado Rápido"))
	assert.True(t, Matches("", "anything"))
	assert.True(t, Matches("ureprix", "Esmalte", "Esmalte Ureprix"))
	assert.False(t, Matches("madera", "Esmalte Ureprix"))
}
