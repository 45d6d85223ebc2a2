package dto

// IssueTokenRequest carries the identity claim for POST /jwt.
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// SuccessResponse acknowledges cookie operations.
type SuccessResponse struct {
	Success bool `json:"success"`
}
