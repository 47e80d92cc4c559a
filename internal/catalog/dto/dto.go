package dto

type ViewFilters struct {
	SearchQuery string // matches name, sku or barcode, case-insensitive
	Category    string // empty means all categories
}
