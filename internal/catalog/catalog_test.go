package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: "g1", Category: "Guitars", Name: "Player Stratocaster", Brand: "Fender", Price: 16999, Stock: 5, Images: []string{"a.jpg"}, Tags: []string{"electric", "single-coil"}},
		{ID: "g2", Category: "Guitars", Name: "Hummingbird Studio", Brand: "Epiphone", Price: 9499, Stock: 8, Images: []string{"b.jpg"}, Tags: []string{"acoustic"}},
		{ID: "k1", Category: "Keyboards", Name: "P-145 Digital Piano", Brand: "Yamaha", Price: 12999, Stock: 7, Images: []string{"c.jpg"}, Tags: []string{"digital piano", "weighted"}},
		{ID: "s1", Category: "Studio/Audio", Name: "SM58", Brand: "Shure", Price: 2899, Stock: 15, Images: []string{"d.jpg"}, Tags: []string{"microphone", "vocal"}},
	}
}

func TestNew_LoadsEmbeddedDataset(t *testing.T) {
	t.Parallel()

	c, err := New()
	require.NoError(t, err)

	all := c.All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool, len(all))
	for _, p := range all {
		assert.False(t, seen[p.ID], "duplicate product id %s", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Images, "product %s must have at least one image", p.ID)
		assert.GreaterOrEqual(t, p.Price, 0.0)
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
}

func TestCatalog_ByID(t *testing.T) {
	t.Parallel()

	c := FromProducts(testProducts())

	p, ok := c.ByID("k1")
	require.True(t, ok)
	assert.Equal(t, "Yamaha", p.Brand)

	_, ok = c.ByID("nope")
	assert.False(t, ok)
}

func TestCatalog_ByID_ReturnsDetachedCopy(t *testing.T) {
	t.Parallel()

	c := FromProducts(testProducts())

	p, ok := c.ByID("g1")
	require.True(t, ok)
	p.Tags[0] = "mutated"

	again, _ := c.ByID("g1")
	assert.Equal(t, "electric", again.Tags[0])
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()

	c := FromProducts(testProducts())

	tests := []struct {
		name     string
		term     string
		category string
		wantIDs  []string
	}{
		{name: "no filters", term: "", category: CategoryAll, wantIDs: []string{"g1", "g2", "k1", "s1"}},
		{name: "category only", term: "", category: "Guitars", wantIDs: []string{"g1", "g2"}},
		{name: "term matches name", term: "strato", category: CategoryAll, wantIDs: []string{"g1"}},
		{name: "term matches brand case-insensitive", term: "YAMAHA", category: CategoryAll, wantIDs: []string{"k1"}},
		{name: "term matches tag", term: "vocal", category: CategoryAll, wantIDs: []string{"s1"}},
		{name: "term and category combine with AND", term: "fender", category: "Keyboards", wantIDs: []string{}},
		{name: "no match", term: "theremin", category: CategoryAll, wantIDs: []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Search(tt.term, tt.category)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCatalog_Categories(t *testing.T) {
	t.Parallel()

	c := FromProducts(testProducts())
	assert.Equal(t, []string{"Guitars", "Keyboards", "Studio/Audio"}, c.Categories())
}
