// Package models defines the storefront records exchanged with the commerce backend.
// Field names follow the backend's snake_case JSON.
package models

// Customer is the signed-in shopper's profile.
type Customer struct {
	// ID is the backend customer identifier.
	ID string `json:"customer_id"`
	// FirstName is the customer's given name.
	FirstName string `json:"firstname"`
	// LastName is the customer's family name.
	LastName string `json:"lastname"`
	// Email is the login e-mail address.
	Email string `json:"email"`
	// Telephone is the contact phone number.
	Telephone string `json:"telephone"`
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Product is a catalog entry.
type Product struct {
	ID           string          `json:"product_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        string          `json:"price"`
	Special      string          `json:"special,omitempty"`
	Tax          string          `json:"tax"`
	Minimum      string          `json:"minimum"`
	Rating       float64         `json:"rating"`
	Thumb        string          `json:"thumb"`
	Image        string          `json:"image,omitempty"`
	Images       []string        `json:"images,omitempty"`
	Options      []ProductOption `json:"options,omitempty"`
	Href         string          `json:"href"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	Model        string          `json:"model,omitempty"`
	StockStatus  string          `json:"stock_status,omitempty"`
	Quantity     int             `json:"quantity,omitempty"`
}

// ProductOption is a configurable product attribute (size, color, ...).
type ProductOption struct {
	ProductOptionID string               `json:"product_option_id"`
	OptionID        string               `json:"option_id"`
	Name            string               `json:"name"`
	Type            string               `json:"type"`
	Value           string               `json:"value"`
	Required        bool                 `json:"required"`
	Values          []ProductOptionValue `json:"product_option_value,omitempty"`
}

// ProductOptionValue is one selectable value of a ProductOption.
type ProductOptionValue struct {
	ProductOptionValueID string `json:"product_option_value_id"`
	OptionValueID        string `json:"option_value_id"`
	Name                 string `json:"name"`
	Image                string `json:"image"`
	Price                string `json:"price"`
	PricePrefix          string `json:"price_prefix"`
}

// Category is a catalog category.
type Category struct {
	ID           string `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	ParentID     string `json:"parent_id"`
	SortOrder    string `json:"sort_order"`
	Status       string `json:"status"`
	DateAdded    string `json:"date_added"`
	DateModified string `json:"date_modified"`
}

// CartLine is one product entry inside the shopping cart.
// Quantity is string-encoded by the backend.
type CartLine struct {
	CartID    string           `json:"cart_id"`
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	Model     string           `json:"model"`
	Option    []CartLineOption `json:"option"`
	Quantity  string           `json:"quantity"`
	Stock     bool             `json:"stock"`
	Shipping  string           `json:"shipping"`
	Price     string           `json:"price"`
	Total     string           `json:"total"`
	Image     string           `json:"image"`
	Href      string           `json:"href"`
}

// CartLineOption is a chosen option value on a cart line.
type CartLineOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CartTotal is a backend-computed total row ("Sub-Total", "Total", ...).
type CartTotal struct {
	// Title is the row label.
	Title string `json:"title"`
	// Text is the formatted display value.
	Text string `json:"text"`
	// Value is the numeric amount.
	Value float64 `json:"value"`
}

// TotalTitle is the label of the grand total row.
const TotalTitle = "Total"

// Cart is a full cart snapshot as returned by the backend.
type Cart struct {
	Products []CartLine  `json:"products"`
	Totals   []CartTotal `json:"totals"`
	// GrandTotal is set by backends that expose the grand total as a typed field.
	GrandTotal *float64 `json:"grand_total,omitempty"`
}

// Order is a summary row of the customer's order history.
type Order struct {
	ID            string `json:"order_id"`
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	Status        string `json:"status"`
	DateAdded     string `json:"date_added"`
	Total         string `json:"total"`
	CurrencyCode  string `json:"currency_code"`
	CurrencyValue string `json:"currency_value"`
}

// OrderDetails is a single order with its lines, totals and status history.
type OrderDetails struct {
	Order
	InvoiceNo string         `json:"invoice_no"`
	Products  []OrderProduct `json:"products"`
	Totals    []CartTotal    `json:"totals"`
	Histories []OrderHistory `json:"histories"`
}

// OrderProduct is one line of a placed order.
type OrderProduct struct {
	OrderProductID string           `json:"order_product_id"`
	ProductID      string           `json:"product_id"`
	Name           string           `json:"name"`
	Model          string           `json:"model"`
	Quantity       string           `json:"quantity"`
	Price          string           `json:"price"`
	Total          string           `json:"total"`
	Option         []CartLineOption `json:"option"`
}

// OrderHistory is a status change entry of an order.
type OrderHistory struct {
	DateAdded string `json:"date_added"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
	Notify    bool   `json:"notify"`
}

// PaymentMethod is a checkout payment option keyed by Code.
type PaymentMethod struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Terms     string `json:"terms"`
	SortOrder string `json:"sort_order"`
}

// ShippingMethod groups the quotes offered by one shipping extension.
type ShippingMethod struct {
	Title     string                   `json:"title"`
	Quote     map[string]ShippingQuote `json:"quote"`
	SortOrder string                   `json:"sort_order"`
	Error     string                   `json:"error,omitempty"`
}

// ShippingQuote is a priced shipping option. Code is what order creation expects.
type ShippingQuote struct {
	Code  string  `json:"code"`
	Title string  `json:"title"`
	Cost  float64 `json:"cost"`
	Text  string  `json:"text"`
}

// RegisterRequest holds the profile fields submitted on sign-up.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Password  string
}

// OrderRequest is the checkout payload.
type OrderRequest struct {
	PaymentMethod  string
	ShippingMethod string
	Comment        string
	// Extra carries backend-specific fields (address ids, agree flags, ...).
	Extra map[string]string
}
