package domain

// BidStatus enumerates lifecycle states for bids.
type BidStatus string

const (
	BidStatusPending    BidStatus = "pending"
	BidStatusInProgress BidStatus = "in-progress"
	BidStatusCompleted  BidStatus = "completed"
	BidStatusRejected   BidStatus = "rejected"
)

// Valid reports whether the status belongs to the closed set.
func (s BidStatus) Valid() bool {
	switch s {
	case BidStatusPending, BidStatusInProgress, BidStatusCompleted, BidStatusRejected:
		return true
	}
	return false
}

// Bid is a seller's offer on a job. SellerEmail owns the record for
// seller-scoped reads; BuyerEmail mirrors the job owner so the buyer can list
// incoming bids. Status is the only field mutable after creation.
type Bid struct {
	ID          string    `json:"_id,omitempty"`
	JobID       string    `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	BuyerEmail  string    `json:"buyerEmail"`
	SellerEmail string    `json:"sellerEmail"`
	Price       float64   `json:"price"`
	Deadline    string    `json:"deadline"`
	Status      BidStatus `json:"status"`
}
