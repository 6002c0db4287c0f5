package domain

// CartItem is one cart line. ID is the product id and is unique per line;
// Quantity is clamped to a minimum of 1 by the cart store.
type CartItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	OriginalPrice float64 `json:"originalPrice"`
}

// WishlistItem carries the same product shape without a quantity. The
// wishlist has set semantics keyed by ID.
type WishlistItem struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	OriginalPrice float64 `json:"originalPrice"`
}

// CartItemOf builds a cart line from a catalog product.
func CartItemOf(p Product, quantity int) CartItem {
	if quantity < 1 {
		quantity = 1
	}
	return CartItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      quantity,
		Image:         p.Image,
		Category:      p.Category,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		OriginalPrice: p.OriginalPrice,
	}
}

// WishlistItemOf builds a wishlist entry from a catalog product.
func WishlistItemOf(p Product) WishlistItem {
	return WishlistItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Category:      p.Category,
		Rating:        p.Rating,
		Reviews:       p.Reviews,
		OriginalPrice: p.OriginalPrice,
	}
}
