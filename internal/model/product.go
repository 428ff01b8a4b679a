package model

import "time"

// Product represents a plant or pot in the catalogue.
type Product struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	Image     string    `json:"image" db:"image"`
	Images    []string  `json:"images" db:"images"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// DisplayImage returns the best available image for the product: the primary
// image if set, otherwise the first of the gallery, otherwise empty.
func (p *Product) DisplayImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
