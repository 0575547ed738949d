package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereClauseEmpty(t *testing.T) {
	cond, args := ListFilter{}.whereClause("")
	assert.Empty(t, cond)
	assert.Empty(t, args)
}

func TestWhereClauseBindsAllFilters(t *testing.T) {
	f := ListFilter{Name: "Alice", Email: "ALICE@x.com", Address: "Main St", Role: "admin"}
	cond, args := f.whereClause("")

	assert.Equal(t,
		" WHERE LOWER(name) LIKE ? AND LOWER(email) LIKE ? AND LOWER(address) LIKE ? AND role = ?",
		cond)
	assert.Equal(t, []any{"%alice%", "%alice@x.com%", "%main st%", "admin"}, args)
}

func TestWhereClausePrefix(t *testing.T) {
	cond, _ := ListFilter{Name: "a", Address: "b"}.whereClause("s.")
	assert.Equal(t, " WHERE LOWER(s.name) LIKE ? AND LOWER(s.address) LIKE ?", cond)
}

// A hostile filter value must travel entirely through the argument list:
// the query shape never changes, whatever the value contains.
func TestWhereClauseInjectionValueStaysBound(t *testing.T) {
	hostile := `'; DROP TABLE users; --`
	cond, args := ListFilter{Name: hostile}.whereClause("")

	assert.Equal(t, " WHERE LOWER(name) LIKE ?", cond)
	assert.NotContains(t, cond, "DROP")
	assert.Equal(t, []any{"%" + strings.ToLower(hostile) + "%"}, args)
}

func TestOrderClauseAllowList(t *testing.T) {
	cases := []struct {
		sortBy, order string
		want          string
	}{
		{"email", "desc", " ORDER BY email DESC"},
		{"role", "DESC", " ORDER BY role DESC"},
		{"name", "asc", " ORDER BY name ASC"},
		{"", "", " ORDER BY name ASC"},
		// out-of-allow-list identifiers fall back to the default column
		{"password_hash", "asc", " ORDER BY name ASC"},
		{"1; DELETE FROM users", "asc", " ORDER BY name ASC"},
		// invalid order falls back to ascending
		{"email", "sideways", " ORDER BY email ASC"},
	}
	for _, tc := range cases {
		f := ListFilter{SortBy: tc.sortBy, Order: tc.order}
		assert.Equal(t, tc.want, f.orderClause(userSortColumns), "sortBy=%q order=%q", tc.sortBy, tc.order)
	}
}

func TestOrderClauseStoreColumns(t *testing.T) {
	f := ListFilter{SortBy: "avg_rating", Order: "desc"}
	assert.Equal(t, " ORDER BY avg_rating DESC", f.orderClause(storeSortColumns))

	// avg_rating is not a user column; it must degrade there.
	assert.Equal(t, " ORDER BY name DESC", f.orderClause(userSortColumns))
}
