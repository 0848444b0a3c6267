package utils

const defaultPageSize = 10

// HandlePagination normalizes skip/take values: a negative skip becomes 0
// and a non-positive take falls back to the default page size.
func HandlePagination(skip, take int64) (int64, int64) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = defaultPageSize
	}
	return skip, take
}
