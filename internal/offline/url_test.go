// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"errors"
	"testing"
)

// =============================================================================
// LOCALHOST DETECTION TESTS
// =============================================================================

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost:8000", true},
		{"127.0.0.1", true},
		{"127.1.2.3", true},
		{"127.0.0.1:8000", true},
		{"::1", true},
		{"[::1]", true},
		{"[::1]:8000", true},
		{"0:0:0:0:0:0:0:1", true},
		{"10.0.0.5", false},
		{"example.edu", false},
		{"localhost.example.edu", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := IsLocalhost(tt.host); got != tt.want {
				t.Errorf("IsLocalhost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

// =============================================================================
// BASE URL VALIDATION TESTS
// =============================================================================

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr error
	}{
		{"http://localhost:8000", nil},
		{"https://assist.example.edu", nil},
		{"HTTP://127.0.0.1:8000/api", nil},
		{"  http://localhost:8000  ", nil},
		{"file:///etc/passwd", ErrInvalidURLScheme},
		{"javascript:alert(1)", ErrInvalidURLScheme},
		{"ftp://example.edu", ErrInvalidURLScheme},
		{"localhost:8000", ErrInvalidURLScheme},
		{"http://", ErrMissingHost},
		{"https:///chat", ErrMissingHost},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBaseURL(%q) = %v, want nil", tt.url, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBaseURL(%q) = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
