// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed, it returns def.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage normalizes 1-based page/size query values: page floors at
// 1, size floors at 1 and caps at max. Returns the slice offset and
// the effective size.
func ClampPage(page, size, max int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if max > 0 && size > max {
		size = max
	}
	return (page - 1) * size, size
}

// PageBounds clips [offset, offset+limit) to a slice of length n.
func PageBounds(offset, limit, n int) (lo, hi int) {
	if offset >= n {
		return n, n
	}
	hi = offset + limit
	if hi > n {
		hi = n
	}
	return offset, hi
}
