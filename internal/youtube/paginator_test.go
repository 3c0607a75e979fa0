package youtube

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPagesAllPages(t *testing.T) {
	pages := map[string]page[int]{
		"":   {items: []int{1, 2}, nextToken: "p2"},
		"p2": {items: []int{3}, nextToken: "p3"},
		"p3": {items: []int{4, 5}},
	}

	var tokens []string
	items, err := collectPages(func(token string) (page[int], error) {
		tokens = append(tokens, token)
		return pages[token], nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items, "items accumulate in page order")
	assert.Equal(t, []string{"", "p2", "p3"}, tokens)
}

func TestCollectPagesSinglePage(t *testing.T) {
	items, err := collectPages(func(token string) (page[string], error) {
		return page[string]{items: []string{"only"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, items)
}

func TestCollectPagesPartialOnFailure(t *testing.T) {
	boom := errors.New("terminal failure")
	items, err := collectPages(func(token string) (page[int], error) {
		switch token {
		case "":
			return page[int]{items: []int{1, 2}, nextToken: "p2"}, nil
		case "p2":
			return page[int]{}, boom
		}
		return page[int]{}, fmt.Errorf("unexpected token %q", token)
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, items, "page 1 survives, pages 2-3 never arrive")
}

func TestCollectPagesEmptyEndpoint(t *testing.T) {
	items, err := collectPages(func(token string) (page[int], error) {
		return page[int]{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, items)
}
