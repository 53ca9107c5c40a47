package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	q := QueryParams{PageNumber: 2, PageSize: 10}

	page := NewPage([]string{"a"}, 11, q)
	assert.Equal(t, 2, page.PagesCount)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 11, page.TotalCount)
	assert.Equal(t, 10, q.Skip())

	empty := NewPage[string](nil, 0, q)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.PagesCount)
}
