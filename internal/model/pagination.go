package model

// PaginationInfo mirrors the pagination object of the users listing response.
// It is recomputed wholesale from each fetch, never mutated incrementally.
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalUsers  int `json:"totalUsers"`
	PageSize    int `json:"pageSize"`
}

// UserPage is one fetched page of the users collection.
type UserPage struct {
	Users      []User         `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// PageCount returns the number of pages needed for total records at the given
// page size. An empty collection still has one page so that a current page of
// 1 never exceeds the total.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
