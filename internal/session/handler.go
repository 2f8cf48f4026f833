package session

import (
	"errors"
	"log"
	"sync"

	"storefront/internal/domain"
)

type accountDirectory interface {
	Exists(username string) bool
	CredentialMatches(username, password string) bool
	Register(username, password string) error
}

type clientRegistry interface {
	Create(username, name string) (*domain.Client, error)
	AddToCart(username, itemKey string, count int) error
	RemoveFromCart(username, itemKey string) error
	AddToSaved(username, itemKey string) error
	RemoveFromSaved(username, itemKey string) error
}

type orderLedger interface {
	Place(username string, itemKeys []string, counts []int, totalCents int64, creditCard, address string) (int64, error)
}

// Handler dispatches decoded client requests to the account directory,
// client registry and order ledger, and tracks which username each
// connection has authenticated as. Each request is handled to completion,
// including its persistence flush, before the handler returns.
type Handler struct {
	accounts accountDirectory
	registry clientRegistry
	ledger   orderLedger

	mu       sync.RWMutex
	sessions map[string]string // session id -> authenticated username

	logger *log.Logger
}

// New builds a Handler with an empty session table.
func New(accounts accountDirectory, registry clientRegistry, ledger orderLedger, logger *log.Logger) *Handler {
	return &Handler{
		accounts: accounts,
		registry: registry,
		ledger:   ledger,
		sessions: make(map[string]string),
		logger:   logger,
	}
}

// Handle processes one request on behalf of the given session and returns
// the response to deliver, or nil when none is sent. Malformed and
// unrecognized requests are logged and dropped; no request outcome closes
// the connection.
func (h *Handler) Handle(sessionID string, req Request) *Response {
	switch req.Method {
	case MethodLoginAttempt:
		return h.login(sessionID, req)
	case MethodSignupAttempt:
		return h.signup(req)
	case MethodAddToCart:
		return h.addToCart(sessionID, req)
	case MethodRemoveFromCart:
		return h.removeFromCart(sessionID, req)
	case MethodAddToSaved:
		return h.addToSaved(sessionID, req)
	case MethodRemoveFromSaved:
		return h.removeFromSaved(sessionID, req)
	case MethodPlaceOrder:
		return h.placeOrder(sessionID, req)
	default:
		h.logger.Printf("session %s: unhandled method %q", sessionID, req.Method)
		return nil
	}
}

// Drop forgets the session's authentication binding. Called when the
// connection closes.
func (h *Handler) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, sessionID)
}

// UsernameFor returns the username the session authenticated as.
func (h *Handler) UsernameFor(sessionID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	username, ok := h.sessions[sessionID]
	return username, ok
}

func (h *Handler) login(sessionID string, req Request) *Response {
	if req.Username == "" {
		h.logger.Printf("session %s: login attempt without username", sessionID)
		return nil
	}
	if !h.accounts.CredentialMatches(req.Username, req.Password) {
		return event(EventInvalidLogin)
	}
	h.mu.Lock()
	h.sessions[sessionID] = req.Username
	h.mu.Unlock()
	return event(EventValidLogin)
}

func (h *Handler) signup(req Request) *Response {
	if req.Username == "" || req.Password == "" {
		h.logger.Printf("signup attempt with missing username or password")
		return nil
	}
	if h.accounts.Exists(req.Username) {
		return event(EventInvalidSignup)
	}
	if err := h.accounts.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return event(EventInvalidSignup)
		}
		// Persistence failure: the account exists in memory, keep going.
		h.logger.Printf("signup %s: %v", req.Username, err)
	}
	if _, err := h.registry.Create(req.Username, req.Name); err != nil {
		h.logger.Printf("create client %s: %v", req.Username, err)
	}
	return event(EventValidSignup)
}

func (h *Handler) addToCart(sessionID string, req Request) *Response {
	username, ok := h.UsernameFor(sessionID)
	if !ok {
		return event(EventNotLoggedIn)
	}
	if req.Item == "" || req.Count < 1 {
		h.logger.Printf("session %s: malformed addToCart (item=%q count=%d)", sessionID, req.Item, req.Count)
		return nil
	}
	if err := h.registry.AddToCart(username, req.Item, req.Count); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return event(EventInvalidItem)
		}
		h.logger.Printf("addToCart %s: %v", username, err)
	}
	return event(EventCartUpdated)
}

func (h *Handler) removeFromCart(sessionID string, req Request) *Response {
	username, ok := h.UsernameFor(sessionID)
	if !ok {
		return event(EventNotLoggedIn)
	}
	if req.Item == "" {
		h.logger.Printf("session %s: malformed removeFromCart", sessionID)
		return nil
	}
	if err := h.registry.RemoveFromCart(username, req.Item); err != nil {
		h.logger.Printf("removeFromCart %s: %v", username, err)
	}
	return event(EventCartUpdated)
}

func (h *Handler) addToSaved(sessionID string, req Request) *Response {
	username, ok := h.UsernameFor(sessionID)
	if !ok {
		return event(EventNotLoggedIn)
	}
	if req.Item == "" {
		h.logger.Printf("session %s: malformed addToSaved", sessionID)
		return nil
	}
	if err := h.registry.AddToSaved(username, req.Item); err != nil {
		h.logger.Printf("addToSaved %s: %v", username, err)
	}
	return event(EventSavedUpdated)
}

func (h *Handler) removeFromSaved(sessionID string, req Request) *Response {
	username, ok := h.UsernameFor(sessionID)
	if !ok {
		return event(EventNotLoggedIn)
	}
	if req.Item == "" {
		h.logger.Printf("session %s: malformed removeFromSaved", sessionID)
		return nil
	}
	if err := h.registry.RemoveFromSaved(username, req.Item); err != nil {
		h.logger.Printf("removeFromSaved %s: %v", username, err)
	}
	return event(EventSavedUpdated)
}

func (h *Handler) placeOrder(sessionID string, req Request) *Response {
	username, ok := h.UsernameFor(sessionID)
	if !ok {
		return event(EventNotLoggedIn)
	}
	number, err := h.ledger.Place(username, req.Items, req.Counts, req.TotalCents, req.CreditCard, req.Address)
	if err != nil {
		// Purchase is placed in memory; only the append failed.
		h.logger.Printf("placeOrder %s: %v", username, err)
	}
	resp := event(EventOrderPlaced)
	resp.OrderNumber = &number
	return resp
}
