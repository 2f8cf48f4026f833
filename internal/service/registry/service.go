package registry

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository/clientrec"
)

type catalogLookup interface {
	Lookup(key string) (*domain.Item, bool)
}

// Service is the client registry: the single owner of all client
// aggregates. Every mutation updates the in-memory aggregate first and then
// performs exactly one full-state flush of that client's durable record. A
// flush failure is returned to the caller but never rolled back; the
// in-memory map is the source of truth for the running process.
type Service struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
	repo    clientrec.Repository
	catalog catalogLookup
	logger  *log.Logger
}

// New rebuilds the registry from persisted client records. Cart lines whose
// item key no longer resolves in the catalog are dropped with a log line.
func New(repo clientrec.Repository, catalog catalogLookup, logger *log.Logger) (*Service, error) {
	records, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load client records: %w", err)
	}

	clients := make(map[string]*domain.Client, len(records))
	for _, rec := range records {
		client := domain.NewClient(rec.Username, rec.Name)
		n := len(rec.CartKeys)
		if len(rec.CartCounts) < n {
			n = len(rec.CartCounts)
		}
		for i := 0; i < n; i++ {
			item, ok := catalog.Lookup(rec.CartKeys[i])
			if !ok {
				logger.Printf("client %s: dropping unknown cart item %q", rec.Username, rec.CartKeys[i])
				continue
			}
			client.Cart[rec.CartKeys[i]] = domain.Order{Item: item, Count: rec.CartCounts[i]}
		}
		for _, key := range rec.Saved {
			client.Saved[key] = true
		}
		clients[rec.Username] = client
	}

	return &Service{clients: clients, repo: repo, catalog: catalog, logger: logger}, nil
}

// Get returns a snapshot copy of the client aggregate.
func (s *Service) Get(username string) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return nil, fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	return snapshot(client), nil
}

// Create registers a client with an empty cart and saved set and persists
// its initial state. Creating an existing username returns the existing
// client unchanged; callers check the account directory first.
func (s *Service) Create(username, name string) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.clients[username]; ok {
		return snapshot(existing), nil
	}
	client := domain.NewClient(username, name)
	s.clients[username] = client
	return snapshot(client), s.flush(client)
}

// AddToCart inserts or overwrites the cart line for itemKey (last write
// wins). The key must resolve in the catalog and count must be positive.
func (s *Service) AddToCart(username, itemKey string, count int) error {
	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	item, ok := s.catalog.Lookup(itemKey)
	if !ok {
		return fmt.Errorf("item %s: %w", itemKey, domain.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	client.Cart[itemKey] = domain.Order{Item: item, Count: count}
	return s.flush(client)
}

// RemoveFromCart removes the cart line for itemKey. Removing an absent key
// is a no-op, not an error.
func (s *Service) RemoveFromCart(username, itemKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	delete(client.Cart, itemKey)
	return s.flush(client)
}

// AddToSaved inserts itemKey into the client's saved set.
func (s *Service) AddToSaved(username, itemKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	client.Saved[itemKey] = true
	return s.flush(client)
}

// RemoveFromSaved removes itemKey from the client's saved set.
func (s *Service) RemoveFromSaved(username, itemKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	delete(client.Saved, itemKey)
	return s.flush(client)
}

// ClearCart empties the client's cart. Used at checkout.
func (s *Service) ClearCart(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[username]
	if !ok {
		return fmt.Errorf("client %s: %w", username, domain.ErrNotFound)
	}
	client.Cart = make(map[string]domain.Order)
	return s.flush(client)
}

// flush writes the client's full current state to its durable record.
// Callers must hold s.mu, which keeps flushes for one client in mutation
// order.
func (s *Service) flush(client *domain.Client) error {
	rec := clientrec.Record{Username: client.Username, Name: client.Name}

	keys := make([]string, 0, len(client.Cart))
	for key := range client.Cart {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rec.CartKeys = append(rec.CartKeys, key)
		rec.CartCounts = append(rec.CartCounts, client.Cart[key].Count)
	}

	for key := range client.Saved {
		rec.Saved = append(rec.Saved, key)
	}
	sort.Strings(rec.Saved)

	if err := s.repo.Save(rec); err != nil {
		s.logger.Printf("flush client %s: %v", client.Username, err)
		return fmt.Errorf("flush client %s: %w", client.Username, err)
	}
	return nil
}

func snapshot(client *domain.Client) *domain.Client {
	copied := domain.NewClient(client.Username, client.Name)
	for key, order := range client.Cart {
		copied.Cart[key] = order
	}
	for key := range client.Saved {
		copied.Saved[key] = true
	}
	return copied
}
