package domain

// ProductList is the raw upstream /Products envelope.
type ProductList struct {
	TotalCount int       `json:"TotalCount"`
	Data       []Product `json:"Data"`
}

// ProductPage is one page of products as served to the caller, with
// pagination arithmetic already done.
type ProductPage struct {
	TotalCount   int       `json:"TotalCount"`
	CurrentPage  int       `json:"CurrentPage"`
	ItemsPerPage int       `json:"ItemsPerPage"`
	TotalPages   int       `json:"TotalPages"`
	Data         []Product `json:"Data"`
}

// EmptyProductPage is the fail-closed result for a read that could not reach
// the upstream: renderable, correct page position, zero rows.
func EmptyProductPage(page, itemsPerPage int) *ProductPage {
	return &ProductPage{
		TotalCount:   0,
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
		TotalPages:   0,
		Data:         []Product{},
	}
}

// PageCount returns ceil(totalCount/itemsPerPage), 0 for an empty result.
func PageCount(totalCount, itemsPerPage int) int {
	if totalCount <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (totalCount + itemsPerPage - 1) / itemsPerPage
}
