package clientrec

// Record is the durable form of a client aggregate. CartKeys and CartCounts
// correspond positionally.
type Record struct {
	Username   string
	Name       string
	CartKeys   []string
	CartCounts []int
	Saved      []string
}

// Repository persists one record per username. Save is a full overwrite of
// the client's record, not an incremental diff.
type Repository interface {
	LoadAll() ([]Record, error)
	Save(rec Record) error
}
