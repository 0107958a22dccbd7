package main

import "testing"

func TestEndpoint(t *testing.T) {
	tests := []struct {
		base     string
		path     string
		expected string
	}{
		{"http://localhost:8080", "/health", "http://localhost:8080/health"},
		{"http://localhost:8080/", "/health", "http://localhost:8080/health"},
		{"https://money.example.com//", "/api/share/abc", "https://money.example.com/api/share/abc"},
	}

	for _, tt := range tests {
		if got := endpoint(tt.base, tt.path); got != tt.expected {
			t.Fatalf("endpoint(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.expected)
		}
	}
}
