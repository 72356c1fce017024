package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "static path unchanged",
			path:     "/api/demands",
			expected: "/api/demands",
		},
		{
			name:     "uuid segment collapsed",
			path:     "/api/demands/7f9c24e8-3b12-4f6c-9a4d-1c2b3d4e5f6a/quotes",
			expected: "/api/demands/{id}/quotes",
		},
		{
			name:     "numeric segment collapsed",
			path:     "/api/orders/12345",
			expected: "/api/orders/{id}",
		},
		{
			name:     "multiple ids collapsed",
			path:     "/api/demands/7f9c24e8-3b12-4f6c-9a4d-1c2b3d4e5f6a/quotes/0b8e1c2d-9f0a-4b1c-8d2e-3f4a5b6c7d8e/award",
			expected: "/api/demands/{id}/quotes/{id}/award",
		},
		{
			name:     "named segment kept",
			path:     "/api/users/health-check",
			expected: "/api/users/health-check",
		},
		{
			name:     "root path unchanged",
			path:     "/",
			expected: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.path))
		})
	}
}
