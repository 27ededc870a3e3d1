package product

import "time"

// Menu categories shown in the storefront.
const (
	CategoryBurgers = "burgers"
	CategoryCombos  = "combos"
)

// Categories lists the accepted product categories.
var Categories = []string{CategoryBurgers, CategoryCombos}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Description is required; the storefront renders it under the name.
	Description string `json:"description"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price     string    `json:"price"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateProductRequest payload of creation.
type CreateProductRequest struct {
	Name        string `json:"name"        example:"Chicken Supreme"`
	Description string `json:"description" example:"Crispy chicken, cheddar and special sauce"`
	Price       string `json:"price"       example:"25.90"`
	Category    string `json:"category"    example:"burgers"`
	ImageURL    string `json:"image_url"   example:"https://cdn.example.com/supreme.jpg"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateProductRequest payload of partial update. Nil fields are left
// untouched, so "false" and "absent" stay distinguishable.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}
