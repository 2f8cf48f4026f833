package account

import (
	"fmt"
	"log"
	"sync"

	"storefront/internal/domain"
	accountrepo "storefront/internal/repository/account"
)

// defaultAccounts are present even when no credentials file exists yet.
var defaultAccounts = map[string]string{
	"adminOG": "encryptedPassword",
	"Steve":   "password123",
}

// Service is the account directory: a process-wide username -> secret map
// loaded once at startup, with new entries appended to durable storage.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]string
	repo     accountrepo.Repository
	logger   *log.Logger
}

// New loads persisted credentials over the default accounts.
func New(repo accountrepo.Repository, logger *log.Logger) (*Service, error) {
	accounts := make(map[string]string, len(defaultAccounts))
	for username, password := range defaultAccounts {
		accounts[username] = password
	}

	loaded, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	for username, password := range loaded {
		accounts[username] = password
	}

	return &Service{accounts: accounts, repo: repo, logger: logger}, nil
}

// Exists reports whether the username is registered.
func (s *Service) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[username]
	return ok
}

// CredentialMatches reports whether the username is registered with exactly
// the supplied password.
func (s *Service) CredentialMatches(username, password string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.accounts[username]
	return ok && credentialEqual(stored, password)
}

// Register inserts a new credential pair and appends it to durable storage.
// It fails with domain.ErrAlreadyExists when the username is taken. The
// in-memory map is updated before the append is issued; an append failure
// is returned but does not roll the insert back.
func (s *Service) Register(username, password string) error {
	s.mu.Lock()
	if _, ok := s.accounts[username]; ok {
		s.mu.Unlock()
		return fmt.Errorf("register %s: %w", username, domain.ErrAlreadyExists)
	}
	s.accounts[username] = password
	s.mu.Unlock()

	if err := s.repo.Append(username, password); err != nil {
		s.logger.Printf("persist account %s: %v", username, err)
		return fmt.Errorf("persist account %s: %w", username, err)
	}
	return nil
}

// credentialEqual is the single point of credential comparison, so a
// hashing scheme can replace the plain comparison without touching call
// sites.
func credentialEqual(stored, supplied string) bool {
	return stored == supplied
}
