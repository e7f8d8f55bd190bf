package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationRequest_Normalize(t *testing.T) {
	assert.Equal(t, PaginationRequest{Page: 1, PageSize: 20}, PaginationRequest{}.Normalize())
	assert.Equal(t, PaginationRequest{Page: 3, PageSize: 100}, PaginationRequest{Page: 3, PageSize: 1000}.Normalize())
	assert.Equal(t, 40, PaginationRequest{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationRequest{Page: -5}.Offset())
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]int{1, 2}, 45, PaginationRequest{Page: 2, PageSize: 20})

	assert.Equal(t, []int{1, 2}, resp.Data)
	assert.Equal(t, int64(45), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasMore)

	last := NewPaginatedResponse([]int(nil), 45, PaginationRequest{Page: 3, PageSize: 20})
	assert.NotNil(t, last.Data, "пустая страница сериализуется как []")
	assert.False(t, last.HasMore)

	empty := NewPaginatedResponse([]string{}, 0, PaginationRequest{})
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore)
}
