package dto

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationRequest - номер страницы и ее размер (с 1)
type PaginationRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Normalize подставляет значения по умолчанию и ограничивает размер страницы.
func (p PaginationRequest) Normalize() PaginationRequest {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p PaginationRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// NewPaginatedResponse собирает ответ со страницей данных.
func NewPaginatedResponse[T any](data []T, total int64, p PaginationRequest) *PaginatedResponse[T] {
	p = p.Normalize()
	if data == nil {
		data = []T{}
	}
	totalPages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	return &PaginatedResponse[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
		HasMore:    p.Page < totalPages,
	}
}
