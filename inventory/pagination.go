package inventory

// MaxPageSize is the largest page a client can ask for; it is also the default.
const MaxPageSize = 20

// Page is the resolved position of one listing request.
type Page struct {
	Number     int64 // 1-based; 0 only when there are no rows
	Size       int64
	TotalPages int64
	Offset     int64
}

// NormalizePageSize keeps sizes in (0, MaxPageSize] and maps everything else to MaxPageSize.
func NormalizePageSize(size int64) int64 {
	if size <= 0 || size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Paginate resolves q against a row count. Pages past the end clamp to the last page.
func Paginate(total int64, q PageQuery) Page {
	size := NormalizePageSize(q.Size)
	if total < 0 {
		total = 0
	}
	totalPages := (total + size - 1) / size

	number := q.Page
	if number <= 0 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	offset := int64(0)
	if number > 0 {
		offset = (number - 1) * size
	}
	return Page{Number: number, Size: size, TotalPages: totalPages, Offset: offset}
}
