package repository

import "strings"

// ListFilter carries the optional filter and sort parameters accepted by
// the list endpoints.  Text filters become case-insensitive substring
// matches bound as query parameters; filter values never reach the query
// text itself.  SortBy and Order are identifiers and cannot be bound as
// placeholders, so they are validated against fixed allow-lists instead:
// an unknown SortBy silently falls back to the default column and an
// unknown Order falls back to ascending.
type ListFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
	SortBy  string
	Order   string
}

// Sort columns permitted per endpoint.  Anything else (password_hash,
// owner_id, an injection attempt) degrades to the default "name".
var (
	userSortColumns  = []string{"name", "email", "address", "role"}
	storeSortColumns = []string{"name", "email", "address", "avg_rating"}
)

const defaultSortColumn = "name"

// whereClause builds the WHERE fragment and its bound arguments.  The
// prefix qualifies column names when the query joins tables ("s." for the
// store browse).  With no filters present it returns an empty fragment,
// yielding an unconditional listing.
func (f ListFilter) whereClause(prefix string) (string, []any) {
	where := []string{}
	args := []any{}

	if f.Name != "" {
		where = append(where, "LOWER("+prefix+"name) LIKE ?")
		args = append(args, contains(f.Name))
	}
	if f.Email != "" {
		where = append(where, "LOWER("+prefix+"email) LIKE ?")
		args = append(args, contains(f.Email))
	}
	if f.Address != "" {
		where = append(where, "LOWER("+prefix+"address) LIKE ?")
		args = append(args, contains(f.Address))
	}
	if f.Role != "" {
		where = append(where, prefix+"role = ?")
		args = append(args, f.Role)
	}

	if len(where) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// orderClause returns the ORDER BY fragment.  Only identifiers from the
// allow-list can appear in it; anything else sorts by the default column.
func (f ListFilter) orderClause(allowed []string) string {
	col := defaultSortColumn
	for _, a := range allowed {
		if f.SortBy == a {
			col = a
			break
		}
	}
	dir := "ASC"
	if strings.EqualFold(f.Order, "desc") {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

func contains(v string) string {
	return "%" + strings.ToLower(v) + "%"
}
