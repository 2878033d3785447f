package storefront

// Product is a snapshot of product data as served by the storefront API.
// Prices are in minor currency units (cents).
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Stock int    `json:"stock"`
}

// CartLine describes one line of a server-side cart. The line id equals the
// product id; the API never issues a separate line identity.
type CartLine struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartPayload mirrors the cart body returned by every cart endpoint.
type CartPayload struct {
	Lines     []CartLine `json:"items"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// ProductListResponse mirrors GET /products.
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// MergeItem is one guest-cart line sent to POST /cart/sync. Only identity and
// quantity travel; the server owns price, name and stock at merge time.
type MergeItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// MergeResult mirrors the POST /cart/sync response.
type MergeResult struct {
	Merged int `json:"merged"`
}

// LoginResponse mirrors POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// OrderConfirmation mirrors POST /checkout.
type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Total   int64  `json:"total"`
}
