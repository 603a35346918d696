package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOrderBy(t *testing.T) {
	allowed := map[string]string{
		"createdAt": "created_at",
		"views":     "views",
	}

	tests := []struct {
		sort     string
		expected string
	}{
		{"createdAt", "created_at ASC"},
		{"-createdAt", "created_at DESC"},
		{"-views", "views DESC"},
		{"", "created_at DESC"},
		{"priority; DROP TABLE users", "created_at DESC"},
		{"unknown", "created_at DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, buildOrderBy(tt.sort, allowed, "created_at DESC"), "sort=%q", tt.sort)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit                            int
		expectedPage, expectedLimit, expectedOffset int
	}{
		{1, 20, 1, 20, 0},
		{3, 10, 3, 10, 20},
		{0, 0, 1, 20, 0},
		{-5, 500, 1, 20, 0},
	}

	for _, tt := range tests {
		page, limit, offset := normalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.expectedPage, page)
		assert.Equal(t, tt.expectedLimit, limit)
		assert.Equal(t, tt.expectedOffset, offset)
	}
}
