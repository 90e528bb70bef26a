package utils

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PostsPerPage is the fixed page size of every post listing.
const PostsPerPage = 10

// PageMeta describes one page of an ordered sequence.
type PageMeta struct {
	Number      int   `json:"page"`
	Size        int   `json:"page_size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
	Previous    int   `json:"previous_page,omitempty"`
	Next        int   `json:"next_page,omitempty"`
}

// Offset is the number of items preceding this page.
func (m PageMeta) Offset() int {
	return (m.Number - 1) * m.Size
}

// Page is a slice of items together with its position in the sequence.
type Page[T any] struct {
	Items      []T      `json:"items"`
	Pagination PageMeta `json:"pagination"`
}

// ParsePageNumber reads a 1-based page query value; absent or malformed input yields 1.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// NewPageMeta clamps requested into [1, last page]. An empty sequence still has one page.
func NewPageMeta(requested int, total int64, size int) PageMeta {
	if size <= 0 {
		size = PostsPerPage
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	m := PageMeta{
		Number:      number,
		Size:        size,
		Total:       total,
		TotalPages:  pages,
		HasPrevious: number > 1,
		HasNext:     number < pages,
	}
	if m.HasPrevious {
		m.Previous = number - 1
	}
	if m.HasNext {
		m.Next = number + 1
	}
	return m
}

// PaginateSlice returns the requested page of an already ordered slice.
func PaginateSlice[T any](items []T, rawPage string, size int) Page[T] {
	meta := NewPageMeta(ParsePageNumber(rawPage), int64(len(items)), size)
	start := meta.Offset()
	end := start + meta.Size
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Items: append([]T{}, items[start:end]...), Pagination: meta}
}

// Paginate counts query once and loads only the requested page. query must
// carry its model and ordering; it is not modified. Associations named in
// preloads are loaded for the page items only, since gorm refuses Count with Preload.
func Paginate[T any](query *gorm.DB, rawPage string, size int, preloads ...string) (Page[T], error) {
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	meta := NewPageMeta(ParsePageNumber(rawPage), total, size)
	items := []T{}
	if total > 0 {
		tx := base.Offset(meta.Offset()).Limit(meta.Size)
		for _, p := range preloads {
			tx = tx.Preload(p)
		}
		if err := tx.Find(&items).Error; err != nil {
			return Page[T]{}, err
		}
	}
	return Page[T]{Items: items, Pagination: meta}, nil
}
