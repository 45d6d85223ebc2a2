package dto

// CreateBidRequest is the POST /bids body.
type CreateBidRequest struct {
	JobID       string  `json:"jobId"`
	JobTitle    string  `json:"jobTitle"`
	BuyerEmail  string  `json:"buyerEmail"`
	SellerEmail string  `json:"sellerEmail"`
	Price       float64 `json:"price"`
	Deadline    string  `json:"deadline"`
	Status      string  `json:"status"`
}

// UpdateBidStatusRequest is the PUT /bids-request/:id body. Status is the
// only mutable bid field.
type UpdateBidStatusRequest struct {
	Status string `json:"status"`
}
