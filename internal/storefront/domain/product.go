package domain

import "time"

type Product struct {
	ID          string
	Title       string
	Description string
	Code        string
	Price       int64 // minor currency units
	Status      bool  // listed for sale
	Stock       int
	Category    string
	Thumbnails  []string
	CreatedAt   time.Time
}

// ProductSort orders product listings by price.
type ProductSort int

const (
	SortNone ProductSort = iota
	SortPriceAsc
	SortPriceDesc
)

// ProductQuery filters and pages a product listing. Match, when set, selects
// products whose category equals it or, for "true"/"false", whose status
// matches.
type ProductQuery struct {
	Match  string
	Sort   ProductSort
	Limit  int
	Offset int
}
