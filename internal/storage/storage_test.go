package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"gallery/a.jpg":    "gallery/a.jpg",
		"/gallery//a.jpg":  "gallery/a.jpg",
		`content\b.jpg`:    "content/b.jpg",
		"./products/c.jpg": "products/c.jpg",
	}
	for in, want := range cases {
		got, err := CleanPath(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", " ", "../etc/passwd", "gallery/../../x", "/"} {
		_, err := CleanPath(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a.jpg", JoinPath("", "a.jpg"))
	assert.Equal(t, "gallery/a.jpg", JoinPath("/gallery/", "a.jpg"))
}

func TestSortObjects(t *testing.T) {
	now := time.Now()
	objects := []ObjectInfo{
		{Name: "b", CreatedAt: now.Add(-time.Hour)},
		{Name: "a", CreatedAt: now},
		{Name: "c", CreatedAt: now.Add(-2 * time.Hour)},
	}

	byName := SortObjects(append([]ObjectInfo(nil), objects...), ListOptions{SortBy: SortByName})
	assert.Equal(t, []string{"a", "b", "c"}, names(byName))

	newest := SortObjects(append([]ObjectInfo(nil), objects...), ListOptions{SortBy: SortByCreatedAt, Desc: true, Limit: 2})
	assert.Equal(t, []string{"a", "b"}, names(newest))
}

func TestHidden(t *testing.T) {
	assert.True(t, Hidden(".emptyFolderPlaceholder"))
	assert.False(t, Hidden("photo.jpg"))
}

func names(objects []ObjectInfo) []string {
	out := make([]string, len(objects))
	for i, o := range objects {
		out[i] = o.Name
	}
	return out
}
