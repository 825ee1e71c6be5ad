// Package inventory serves the paginated, tenant-scoped listing of the sheet-metal stock view.
// All reads go through one exclusive SQL Server session (see Session).
package inventory

// PageQuery is a parsed listing request. Zero Page and Size mean "not given".
type PageQuery struct {
	Page      int64
	Size      int64
	SortField Column
	SortDir   Direction
}

// PageResult is the body of GET /api/orders.
type PageResult struct {
	Results     []InventoryRow `json:"results"`
	CurrentPage int64          `json:"current_page" example:"1"`
	TotalPages  int64          `json:"total_pages" example:"3"`
	TotalCount  int64          `json:"total_count" example:"45"`
}

// InventoryRow is one row of the stock view. Every field is nullable: a value the
// driver returns as NULL, or in a type that cannot be converted, is sent as null.
type InventoryRow struct {
	Codice    *string  `json:"codice"`
	Materiale *string  `json:"materiale"`
	Spessore  *float64 `json:"spessore"`
	DimX      *float64 `json:"dimX"`
	DimY      *float64 `json:"dimY"`
	Area      *float64 `json:"area"`
	Peso      *float64 `json:"peso"`
	Ritaglio  *uint8   `json:"ritaglio"`
	Qta       *int32   `json:"qta"`
	Udata1    *string  `json:"udata1"`
	Udata2    *string  `json:"udata2"`
	Udata3    *string  `json:"udata3"`
}
