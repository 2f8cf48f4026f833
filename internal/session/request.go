package session

// Request is one decoded client message. Method discriminates; the other
// fields are method-specific.
type Request struct {
	Method     string   `json:"method"`
	Username   string   `json:"username,omitempty"`
	Name       string   `json:"name,omitempty"`
	Password   string   `json:"password,omitempty"`
	Item       string   `json:"item,omitempty"`
	Count      int      `json:"count,omitempty"`
	Items      []string `json:"items,omitempty"`
	Counts     []int    `json:"counts,omitempty"`
	TotalCents int64    `json:"totalCents,omitempty"`
	CreditCard string   `json:"creditCard,omitempty"`
	Address    string   `json:"address,omitempty"`
}

// Response is the event payload delivered back to the originating
// connection. A nil *Response means no response is sent.
type Response struct {
	MessageEvent string `json:"messageEvent"`
	OrderNumber  *int64 `json:"orderNumber,omitempty"`
}

// Request methods.
const (
	MethodLoginAttempt    = "loginAttempt"
	MethodSignupAttempt   = "signupAttempt"
	MethodAddToCart       = "addToCart"
	MethodRemoveFromCart  = "removeFromCart"
	MethodAddToSaved      = "addToSaved"
	MethodRemoveFromSaved = "removeFromSaved"
	MethodPlaceOrder      = "placeOrder"
)

// Response events.
const (
	EventValidLogin    = "validLogin"
	EventInvalidLogin  = "invalidLogin"
	EventValidSignup   = "validSignup"
	EventInvalidSignup = "invalidSignup"
	EventCartUpdated   = "cartUpdated"
	EventSavedUpdated  = "savedUpdated"
	EventOrderPlaced   = "orderPlaced"
	EventInvalidItem   = "invalidItem"
	EventNotLoggedIn   = "notLoggedIn"
)

func event(name string) *Response {
	return &Response{MessageEvent: name}
}
