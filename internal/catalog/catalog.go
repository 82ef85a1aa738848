// Package catalog serves the static product dataset: loaded once at
// startup, never mutated, queried by id, category and free text.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

// CategoryAll bypasses category filtering in Search.
const CategoryAll = "All"

//go:embed products.json
var productsJSON []byte

type Catalog struct {
	products []Product
	byID     map[string]int
}

// New loads the embedded dataset.
func New() (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("catalog: decode embedded dataset: %w", err)
	}
	return FromProducts(products), nil
}

// FromProducts builds a catalog over an explicit dataset.
func FromProducts(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	for i := range products {
		c.byID[products[i].ID] = i
	}
	return c
}

// All returns the full dataset in load order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	for i := range c.products {
		out[i] = c.products[i].Clone()
	}
	return out
}

func (c *Catalog) ByID(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].Clone(), true
}

// Search filters by category (exact match, CategoryAll bypasses) AND by
// term (case-insensitive substring over name, brand and tags; empty term
// bypasses).
func (c *Catalog) Search(term, category string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]Product, 0, len(c.products))
	for i := range c.products {
		p := &c.products[i]
		if category != CategoryAll && category != "" && p.Category != category {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// Categories returns the distinct categories in dataset order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{}, len(c.products))
	out := make([]string, 0, len(c.products))
	for i := range c.products {
		cat := c.products[i].Category
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

func matchesTerm(p *Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Brand), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
