package domain

// Category enumerates the fixed job category tags.
type Category string

const (
	CategoryWebDevelopment   Category = "web-development"
	CategoryDigitalMarketing Category = "digital-marketing"
	CategoryGraphicsDesign   Category = "graphics-design"
)

// Categories lists every valid category tag.
var Categories = []Category{
	CategoryWebDevelopment,
	CategoryDigitalMarketing,
	CategoryGraphicsDesign,
}

// Valid reports whether the tag belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Job is a posting created by a buyer. BuyerEmail determines ownership for
// buyer-scoped reads; every other field is replaced as a unit on update.
type Job struct {
	ID           string   `json:"_id,omitempty"`
	BuyerEmail   string   `json:"buyerEmail"`
	JobTitle     string   `json:"jobTitle"`
	Category     Category `json:"category"`
	Deadline     string   `json:"deadline"`
	MinimumPrice float64  `json:"minimumPrice"`
	MaximumPrice float64  `json:"maximumPrice"`
	Description  string   `json:"description"`
}
