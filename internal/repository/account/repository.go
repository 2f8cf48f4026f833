package account

// Repository persists credential pairs. The store is append-only: existing
// entries are loaded once at startup and never rewritten.
type Repository interface {
	Load() (map[string]string, error)
	Append(username, password string) error
}
