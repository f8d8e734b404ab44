package posts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/user/blogger-go/comments"
	"github.com/user/blogger-go/pagination"
)

func TestSortKeyResolution(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		wantCol string
	}{
		{"default", "", "created_at"},
		{"created at", "createdAt", "created_at"},
		{"updated at", "updatedAt", "updated_at"},
		{"title", "title", "title"},
		{"unknown key falls back", "views", "created_at"},
		{"injection attempt falls back", "created_at; DROP TABLE posts;--", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Resolve("1", tt.sortBy, sortable, defaultSortField)
			require.Equal(t, tt.wantCol, params.OrderBy)
		})
	}
}

func TestPostJSONShape(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := Post{
		ID:        7,
		Title:     "a title",
		Content:   "a body",
		Creator:   CreatorSummary{ID: 3, Name: "ada"},
		Comments:  []comments.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	raw, err := json.Marshal(post)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Field names are part of the API contract.
	for _, key := range []string{"id", "title", "content", "creator", "comments", "createdAt", "updatedAt"} {
		require.Contains(t, decoded, key)
	}

	// Empty comments serialize as [], never null.
	require.Equal(t, []interface{}{}, decoded["comments"])

	creator, ok := decoded["creator"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, float64(3), creator["id"])
	require.Equal(t, "ada", creator["name"])
}

func TestListEnvelopeShape(t *testing.T) {
	resp := ListPostsResponse{
		Message:    "Posts fetched successfully",
		Posts:      []Post{},
		TotalItems: 42,
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	require.JSONEq(t, `{"message":"Posts fetched successfully","posts":[],"totalItems":42}`, string(raw))
}
