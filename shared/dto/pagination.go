package dto

import "math"

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total int, params QueryParams) Pagination {
	return Pagination{
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: TotalPages(total, params.Limit),
	}
}

// TotalPages is ceil(total/limit), 0 when there is nothing to page through.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}

// Paginated is a page of items plus the pagination block rendered next to it.
type Paginated[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
