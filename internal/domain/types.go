package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams carries the paging, ordering and filter inputs of a list request.
type ListParams struct {
	Page    int
	Size    int
	Order   string
	Filters map[string]string
}

// Normalize clamps paging to sane bounds.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	p.Order = strings.TrimSpace(p.Order)
	return p
}

// Offset is the number of rows to skip for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// ParsePositiveInt returns fallback when raw is empty or not a positive integer.
func ParsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Page is a slice of a list result plus totals.
type Page[T any] struct {
	Data        []T `json:"data"`
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewPage builds a page from the rows of the current page and the overall total.
func NewPage[T any](data []T, total int, p ListParams) Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if p.Size > 0 {
		pages = (total + p.Size - 1) / p.Size
	}
	return Page[T]{Data: data, TotalItems: total, CurrentPage: p.Page, TotalPages: pages}
}

// Paginate slices an in-memory result the same way repositories page SQL rows.
func Paginate[T any](items []T, p ListParams) Page[T] {
	p = p.Normalize()
	total := len(items)
	start := min(p.Offset(), total)
	end := min(start+p.Size, total)
	return NewPage(items[start:end], total, p)
}
