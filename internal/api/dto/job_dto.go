package dto

// CreateJobRequest is the POST /jobs body.
type CreateJobRequest struct {
	BuyerEmail   string  `json:"buyerEmail"`
	JobTitle     string  `json:"jobTitle"`
	Category     string  `json:"category"`
	Deadline     string  `json:"deadline"`
	MinimumPrice float64 `json:"minimumPrice"`
	MaximumPrice float64 `json:"maximumPrice"`
	Description  string  `json:"description"`
}

// UpdateJobRequest is the PUT /jobs/:id body. The owner field is not
// editable, so it is absent here.
type UpdateJobRequest struct {
	JobTitle     string  `json:"jobTitle"`
	Category     string  `json:"category"`
	Deadline     string  `json:"deadline"`
	MinimumPrice float64 `json:"minimumPrice"`
	MaximumPrice float64 `json:"maximumPrice"`
	Description  string  `json:"description"`
}

// InsertResponse mirrors the store insert result.
type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}

// UpdateResponse mirrors the store update result.
type UpdateResponse struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResponse mirrors the store delete result.
type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
