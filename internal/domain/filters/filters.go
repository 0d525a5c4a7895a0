package filters

import (
	"cinerate/proj/internal/lib/validator"
	"cmp"
	"slices"
	"sort"
	"strings"

	govalidator "github.com/go-playground/validator/v10"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxPage         = 10_000_000
	DefaultSortBy   = "createdAt"
	DefaultOrder    = "desc"
)

// Filters is a page request. SortSafelist maps the public sort field name
// to the storage column it orders by.
type Filters struct {
	Page         int               `schema:"page" json:"page" validate:"gte=1,lte=10000000"`
	PageSize     int               `schema:"limit" json:"limit" validate:"gte=1,lte=100"`
	SortBy       string            `schema:"sortBy" json:"sortBy"`
	SortOrder    string            `schema:"sortOrder" json:"sortOrder" validate:"sortorder"`
	SortSafelist map[string]string `schema:"-" json:"-"`
}

func New(safelist map[string]string) Filters {
	return Filters{
		Page:         DefaultPage,
		PageSize:     DefaultPageSize,
		SortBy:       DefaultSortBy,
		SortOrder:    DefaultOrder,
		SortSafelist: safelist,
	}
}

func (f *Filters) Validate(v *govalidator.Validate) map[string]string {
	errs := validator.ValidateStruct(v, *f)
	if _, ok := f.SortSafelist[f.SortBy]; !ok {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["sortBy"] = "Value should be one of " + strings.Join(f.allowedSorts(), ", ")
	}
	return errs
}

func (f *Filters) allowedSorts() []string {
	names := make([]string, 0, len(f.SortSafelist))
	for name := range f.SortSafelist {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortColumn panics on a field outside the safelist: it is interpolated into SQL.
func (f *Filters) SortColumn() string {
	column, ok := f.SortSafelist[f.SortBy]
	if !ok {
		panic("unknown sort column: " + f.SortBy)
	}
	return column
}

func (f *Filters) SortDirection() string {
	if strings.EqualFold(f.SortOrder, "asc") {
		return AscSort
	}
	return DescSort
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Metadata struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

func CalculateMetadata(totalItems, page, pageSize int) Metadata {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Metadata{
		Page:       page,
		Limit:      pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Comparators orders records of type T by public sort field name.
type Comparators[T any] map[string]func(a, b T) int

// Paginate sorts a copy of items the same way the SQL stores do
// (sort key in the requested direction, then id ascending) and cuts the requested page.
func Paginate[T any](items []T, f Filters, cmps Comparators[T], id func(T) int64) ([]T, Metadata) {
	sorted := slices.Clone(items)
	byKey := cmps[f.SortBy]
	desc := f.SortDirection() == DescSort
	slices.SortStableFunc(sorted, func(a, b T) int {
		if byKey != nil {
			c := byKey(a, b)
			if desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(id(a), id(b))
	})

	meta := CalculateMetadata(len(sorted), f.Page, f.PageSize)
	offset := f.Offset()
	if offset < 0 || offset >= len(sorted) {
		return []T{}, meta
	}
	end := min(offset+f.Limit(), len(sorted))
	return sorted[offset:end], meta
}
