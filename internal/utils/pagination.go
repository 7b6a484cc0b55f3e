package utils

import (
	"net/url"
	"strconv"

	"github.com/eyatrooz/cinemaBooking-Backend/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// ParsePagination читает page/limit из query-параметров и ограничивает limit сверху.
func ParsePagination(query url.Values) (page, limit, offset int) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.Atoi(query.Get("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v >= 1 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset = (page - 1) * limit
	return page, limit, offset
}

func BuildPaginated(data interface{}, page, limit, total int) models.PaginatedResponse {
	totalPages := (total + limit - 1) / limit
	return models.PaginatedResponse{
		Data: data,
		Pagination: models.Pagination{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   total,
			TotalPages:   totalPages,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	}
}
