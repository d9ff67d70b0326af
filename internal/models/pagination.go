package models

// Pagination describes where a page sits inside the full result set.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type ProductPage struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type MessagePage struct {
	Messages   []*Message `json:"messages"`
	Pagination Pagination `json:"pagination"`
}
