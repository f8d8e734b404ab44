package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var sortable = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()

	p := Resolve("", "", sortable, "createdAt")
	require.Equal(t, 1, p.Page)
	require.Equal(t, PerPage, p.Limit)
	require.Equal(t, 0, p.Offset)
	require.Equal(t, "created_at", p.OrderBy)
}

func TestResolveOffsetWindow(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		page       string
		wantPage   int
		wantOffset int
	}{
		{"1", 1, 0},
		{"2", 2, 10},
		{"7", 7, 60},
		{"100000", 100000, 999990}, // no upper bound on page
	} {
		p := Resolve(tc.page, "createdAt", sortable, "createdAt")
		require.Equal(t, tc.wantPage, p.Page)
		require.Equal(t, tc.wantOffset, p.Offset)
		require.Equal(t, PerPage, p.Limit)
	}
}

func TestResolveRejectsBogusPage(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"0", "-3", "abc", "1.5", "9999999999999999999999"} {
		p := Resolve(raw, "createdAt", sortable, "createdAt")
		require.Equal(t, 1, p.Page, "page %q should fall back to 1", raw)
		require.Equal(t, 0, p.Offset)
	}
}

func TestResolveSortWhitelist(t *testing.T) {
	t.Parallel()

	require.Equal(t, "title", Resolve("1", "title", sortable, "createdAt").OrderBy)
	require.Equal(t, "updated_at", Resolve("1", "updatedAt", sortable, "createdAt").OrderBy)

	// Unknown or hostile sort fields fall back to the default column.
	for _, raw := range []string{"password", "id; DROP TABLE posts", ""} {
		require.Equal(t, "created_at", Resolve("1", raw, sortable, "createdAt").OrderBy)
	}
}
