package ledger

// Record is the durable form of a purchase. ItemKeys and Counts correspond
// positionally.
type Record struct {
	Number     int64
	Username   string
	ItemKeys   []string
	Counts     []int
	TotalCents int64
	CreditCard string
	Address    string
}

// Repository is the append-only purchase store. Records are appended as
// purchases are placed and replayed in full at startup.
type Repository interface {
	LoadAll() ([]Record, error)
	Append(rec Record) error
}
