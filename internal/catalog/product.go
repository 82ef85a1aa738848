package catalog

// Product is a read-only record from the static dataset. Instances handed
// out by the Catalog are value copies; mutating one never affects the
// dataset or any other holder.
type Product struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Clone returns a deep copy, detaching the image and tag slices.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Tags = append([]string(nil), p.Tags...)
	return out
}
