package model

// Page is the pagination envelope returned by every list endpoint.
// Number is the zero-based page index that was served.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
}

// PageOf wraps an already-sliced page of content in the envelope, for list
// sources that count and limit server-side.
func PageOf[T any](content []T, total int64, page, size int) Page[T] {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
		Size:          size,
		Number:        page,
	}
}

// NewPage slices items into the requested page and fills the envelope.
// A page past the end yields an empty Content, never an error.
func NewPage[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	total := int64(len(items))
	totalPages := int((total + int64(size) - 1) / int64(size))

	start := page * size
	end := start + size
	content := []T{}
	if start < len(items) {
		if end > len(items) {
			end = len(items)
		}
		content = items[start:end]
	}

	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}
