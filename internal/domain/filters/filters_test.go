package filters

import (
	"cinerate/proj/internal/lib/validator"
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    int64
	score int
}

var itemSorts = Comparators[item]{
	"score": func(a, b item) int { return cmp.Compare(a.score, b.score) },
}

var itemSafelist = map[string]string{"score": "score", "createdAt": "created_at"}

func itemID(i item) int64 { return i.id }

func TestCalculateMetadata(t *testing.T) {
	testCases := []struct {
		name               string
		total, page, limit int
		expectedPages      int
		hasNext, hasPrev   bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"single page", 3, 1, 10, 1, false, false},
		{"first of many", 25, 1, 10, 3, true, false},
		{"middle", 25, 2, 10, 3, true, true},
		{"last", 25, 3, 10, 3, false, true},
		{"past the end", 25, 7, 10, 3, false, true},
		{"exact multiple", 20, 2, 10, 2, false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			meta := CalculateMetadata(tc.total, tc.page, tc.limit)
			assert.Equal(t, tc.expectedPages, meta.TotalPages)
			assert.Equal(t, tc.total, meta.TotalItems)
			assert.Equal(t, tc.hasNext, meta.HasNext)
			assert.Equal(t, tc.hasPrev, meta.HasPrev)
		})
	}
}

func TestPaginatePartitionsSortedSequence(t *testing.T) {
	var items []item
	for i := int64(1); i <= 23; i++ {
		// lots of ties on score so the id tie-break matters
		items = append(items, item{id: i, score: int(i % 4)})
	}
	for _, order := range []string{"asc", "desc"} {
		t.Run(order, func(t *testing.T) {
			f := New(itemSafelist)
			f.SortBy = "score"
			f.SortOrder = order
			f.PageSize = 5
			seen := make(map[int64]bool)
			var walked []item
			for page := 1; page <= 5; page++ {
				f.Page = page
				got, meta := Paginate(items, f, itemSorts, itemID)
				assert.Equal(t, 5, meta.TotalPages)
				assert.Equal(t, page < 5, meta.HasNext)
				assert.Equal(t, page > 1, meta.HasPrev)
				for _, it := range got {
					assert.False(t, seen[it.id], "duplicate id %d", it.id)
					seen[it.id] = true
				}
				walked = append(walked, got...)
			}
			require.Len(t, walked, len(items))
			for i := 1; i < len(walked); i++ {
				prev, cur := walked[i-1], walked[i]
				if prev.score == cur.score {
					assert.Less(t, prev.id, cur.id)
				} else if order == "asc" {
					assert.Less(t, prev.score, cur.score)
				} else {
					assert.Greater(t, prev.score, cur.score)
				}
			}
		})
	}
}

func TestPaginateDeterministic(t *testing.T) {
	items := []item{{3, 1}, {1, 1}, {2, 1}, {4, 0}}
	f := New(itemSafelist)
	f.SortBy = "score"
	f.PageSize = 2
	first, _ := Paginate(items, f, itemSorts, itemID)
	second, _ := Paginate(items, f, itemSorts, itemID)
	assert.Equal(t, first, second)
	assert.Equal(t, []item{{1, 1}, {2, 1}}, first)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	items := []item{{1, 1}, {2, 2}}
	f := New(itemSafelist)
	f.Page = 4
	got, meta := Paginate(items, f, itemSorts, itemID)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

func TestFiltersValidate(t *testing.T) {
	v := validator.New()
	f := New(itemSafelist)
	assert.Empty(t, f.Validate(v))

	f.Page = 0
	f.PageSize = 101
	f.SortBy = "password"
	f.SortOrder = "sideways"
	errs := f.Validate(v)
	assert.Contains(t, errs, "page")
	assert.Contains(t, errs, "limit")
	assert.Contains(t, errs, "sortBy")
	assert.Contains(t, errs, "sortOrder")

	f = New(itemSafelist)
	f.Page = MaxPage
	assert.Empty(t, f.Validate(v))
	f.Page = 5534023222112865486
	assert.Equal(t, "Value should be less than or equal to 10000000", f.Validate(v)["page"])
}

func TestOffsetAtMaxPage(t *testing.T) {
	f := New(itemSafelist)
	f.Page = MaxPage
	f.PageSize = MaxPageSize
	assert.Equal(t, (MaxPage-1)*MaxPageSize, f.Offset())
	assert.Positive(t, f.Offset())

	got, meta := Paginate([]item{{1, 1}, {2, 2}}, f, itemSorts, itemID)
	assert.Empty(t, got)
	assert.False(t, meta.HasNext)
}

func TestSortColumnAndDirection(t *testing.T) {
	f := New(itemSafelist)
	assert.Equal(t, "created_at", f.SortColumn())
	assert.Equal(t, DescSort, f.SortDirection())
	f.SortOrder = "ASC"
	assert.Equal(t, AscSort, f.SortDirection())
	f.SortBy = "nope"
	assert.Panics(t, func() { f.SortColumn() })
}
