package utils_test

import (
	"authbox/utils"
	"net/http"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "Well-formed bearer header should yield the token",
			header: "Bearer abc123",
			want:   "abc123",
		},
		{
			name:   "Scheme should be case insensitive",
			header: "bearer abc123",
			want:   "abc123",
		},
		{
			name:   "Missing header should yield empty string",
			header: "",
			want:   "",
		},
		{
			name:   "Wrong scheme should yield empty string",
			header: "Basic abc123",
			want:   "",
		},
		{
			name:   "Scheme without token should yield empty string",
			header: "Bearer",
			want:   "",
		},
		{
			name:   "Bare token without scheme should yield empty string",
			header: "abc123",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := http.NewRequest(http.MethodGet, "/user/me", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := utils.BearerToken(r); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
