package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"storefront/internal/domain"
	ledgerrepo "storefront/internal/repository/ledger"
)

type catalogLookup interface {
	Lookup(key string) (*domain.Item, bool)
}

type cartClearer interface {
	ClearCart(username string) error
}

// Service is the order ledger: an append-only map of purchases keyed by
// order number. Number assignment is serialized so two concurrent
// placements can never receive the same number, and numbers are never
// reused across restarts.
type Service struct {
	mu        sync.Mutex
	purchases map[int64]*domain.Purchase
	next      int64
	repo      ledgerrepo.Repository
	catalog   catalogLookup
	registry  cartClearer
	logger    *log.Logger
}

// New replays the persisted ledger and seeds the next-number counter to one
// past the highest number seen (0 for an empty ledger). The persisted key
// space may be sparse; replay tolerates gaps.
func New(repo ledgerrepo.Repository, catalog catalogLookup, registry cartClearer, logger *log.Logger) (*Service, error) {
	records, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("replay ledger: %w", err)
	}

	purchases := make(map[int64]*domain.Purchase, len(records))
	var next int64
	for _, rec := range records {
		purchases[rec.Number] = &domain.Purchase{
			Number:     rec.Number,
			Username:   rec.Username,
			Orders:     zip(catalog, rec.ItemKeys, rec.Counts, logger),
			TotalCents: rec.TotalCents,
			CreditCard: rec.CreditCard,
			Address:    rec.Address,
		}
		if rec.Number >= next {
			next = rec.Number + 1
		}
	}

	return &Service{
		purchases: purchases,
		next:      next,
		repo:      repo,
		catalog:   catalog,
		registry:  registry,
		logger:    logger,
	}, nil
}

// Place finalizes a purchase: it builds the order list from the supplied
// keys and counts, clears the purchaser's cart, assigns the next order
// number, stores the purchase and appends it to the durable ledger. The
// assigned number is returned even when the append fails; the error then
// reports the persistence failure.
//
// Keys and counts are zipped up to the shorter of the two sequences, and
// keys that do not resolve in the catalog are skipped. Both are documented
// truncation policy, not errors.
func (s *Service) Place(username string, itemKeys []string, counts []int, totalCents int64, creditCard, address string) (int64, error) {
	orders := zip(s.catalog, itemKeys, counts, s.logger)

	if err := s.registry.ClearCart(username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		// Cart state is already cleared in memory; only the flush failed.
		s.logger.Printf("clear cart for %s: %v", username, err)
	}

	s.mu.Lock()
	number := s.next
	s.next++
	s.purchases[number] = &domain.Purchase{
		Number:     number,
		Username:   username,
		Orders:     orders,
		TotalCents: totalCents,
		CreditCard: creditCard,
		Address:    address,
	}
	s.mu.Unlock()

	rec := ledgerrepo.Record{
		Number:     number,
		Username:   username,
		TotalCents: totalCents,
		CreditCard: creditCard,
		Address:    address,
	}
	for _, order := range orders {
		rec.ItemKeys = append(rec.ItemKeys, order.Item.Key())
		rec.Counts = append(rec.Counts, order.Count)
	}
	if err := s.repo.Append(rec); err != nil {
		s.logger.Printf("persist purchase %d: %v", number, err)
		return number, fmt.Errorf("persist purchase %d: %w", number, err)
	}
	return number, nil
}

// Get returns the purchase stored under the given order number.
func (s *Service) Get(number int64) (*domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchase, ok := s.purchases[number]
	if !ok {
		return nil, fmt.Errorf("purchase %d: %w", number, domain.ErrNotFound)
	}
	return purchase, nil
}

func zip(catalog catalogLookup, itemKeys []string, counts []int, logger *log.Logger) []domain.Order {
	n := len(itemKeys)
	if len(counts) < n {
		n = len(counts)
	}
	orders := make([]domain.Order, 0, n)
	for i := 0; i < n; i++ {
		item, ok := catalog.Lookup(itemKeys[i])
		if !ok {
			logger.Printf("order line for unknown item %q skipped", itemKeys[i])
			continue
		}
		orders = append(orders, domain.Order{Item: item, Count: counts[i]})
	}
	return orders
}
