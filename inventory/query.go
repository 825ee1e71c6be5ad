package inventory

import (
	"fmt"
	"strings"
)

// Column is a sortable column of the stock view. The only values that exist are the
// ones in `columns`, so a Column can always be written into query text verbatim.
type Column struct {
	name  string // view column
	field string // JSON field of InventoryRow
}

// Name is the view column name.
func (c Column) Name() string { return c.name }

// columns lists the view's columns by position. Rows are read with SELECT * and
// rowFromValues maps them by this position.
var columns = []Column{
	{"Codice", "codice"},
	{"Materiale", "materiale"},
	{"Spessore", "spessore"},
	{"DimX", "dimX"},
	{"DimY", "dimY"},
	{"Area", "area"},
	{"Peso", "peso"},
	{"Ritaglio", "ritaglio"},
	{"Qta", "qta"},
	{"Udata1", "udata1"},
	{"Udata2", "udata2"},
	{"Udata3", "udata3"},
}

// tenantColumn holds the customer name rows are scoped by.
var tenantColumn = columns[9]

// DefaultColumn is the sort column used when the client names none or an unknown one.
var DefaultColumn = columns[0]

// ParseColumn resolves a client sort field, by view column or JSON name, ignoring case.
// Anything not in the whitelist becomes DefaultColumn.
func ParseColumn(raw string) Column {
	raw = strings.TrimSpace(raw)
	for _, c := range columns {
		if strings.EqualFold(raw, c.name) || strings.EqualFold(raw, c.field) {
			return c
		}
	}
	return DefaultColumn
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection accepts asc/desc in any case; everything else is DESC.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Asc)) {
		return Asc
	}
	return Desc
}

// statement is query text plus its positional arguments. Values only ever travel in args.
type statement struct {
	text string
	args []any
}

// bind appends v and returns its @pN placeholder.
func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return fmt.Sprintf("@p%d", len(s.args))
}

func (s *statement) where(tenant string) {
	if tenant != "" {
		s.text += " WHERE " + tenantColumn.name + " = " + s.bind(tenant)
	}
}

// countQuery counts the rows visible to tenant. An empty tenant counts every row.
func countQuery(view, tenant string) statement {
	s := statement{text: "SELECT COUNT(*) FROM " + view}
	s.where(tenant)
	return s
}

// pageQuery selects one page. Arguments are bound tenant first, then offset, then size.
func pageQuery(view, tenant string, col Column, dir Direction, offset, size int64) statement {
	s := statement{text: "SELECT * FROM " + view}
	s.where(tenant)
	s.text += fmt.Sprintf(" ORDER BY %s %s", col.name, dir)
	s.text += " OFFSET " + s.bind(offset) + " ROWS"
	s.text += " FETCH NEXT " + s.bind(size) + " ROWS ONLY"
	return s
}
