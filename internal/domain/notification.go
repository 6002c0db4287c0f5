package domain

// Notification kinds shown by the storefront.
const (
	NotifyCart     = "cart"
	NotifyWishlist = "wishlist"
	NotifySuccess  = "success"
	NotifyError    = "error"
)

// Notification is the singleton transient toast. At most one exists at a
// time; a new Show replaces the current one.
type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
