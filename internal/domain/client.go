package domain

// Order pairs a catalog item with a quantity. It exists only inside a
// client's cart or inside a finalized purchase's order list.
type Order struct {
	Item  *Item `json:"item"`
	Count int   `json:"count"`
}

// Purchase is an immutable record of a finalized transaction, addressed by
// its order number. Its order list is an independent snapshot; later cart
// mutation never affects it.
type Purchase struct {
	Number     int64   `json:"orderNumber"`
	Username   string  `json:"username"`
	Orders     []Order `json:"orders"`
	TotalCents int64   `json:"totalCents"`
	CreditCard string  `json:"-"`
	Address    string  `json:"address,omitempty"`
}

// Client is the mutable per-account aggregate: profile, cart and saved
// items. Exactly one instance exists per username; all mutation goes
// through the client registry.
type Client struct {
	Username string           `json:"username"`
	Name     string           `json:"name"`
	Cart     map[string]Order `json:"cart"`
	Saved    map[string]bool  `json:"saved"`
}

// NewClient builds a client with an empty cart and saved set.
func NewClient(username, name string) *Client {
	return &Client{
		Username: username,
		Name:     name,
		Cart:     make(map[string]Order),
		Saved:    make(map[string]bool),
	}
}
