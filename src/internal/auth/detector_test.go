package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kennelhub-session-svc/src/internal/models"
)

func TestDetectProtocol(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		finalUrl string
		want     string
	}{
		{
			name:     "marker in final url",
			body:     "<html></html>",
			finalUrl: "https://auth.example.org/cas/login?service=https%3A%2F%2Fexample.org",
			want:     models.LoginMethodSSO,
		},
		{
			name:     "marker in body",
			body:     `<a href="/cas/login">Sign in</a>`,
			finalUrl: "https://example.org/login",
			want:     models.LoginMethodSSO,
		},
		{
			name:     "no marker defaults to standard",
			body:     `<form method="post" action="/login"><input name="username"></form>`,
			finalUrl: "https://example.org/login",
			want:     models.LoginMethodStandard,
		},
		{
			name:     "empty page defaults to standard",
			body:     "",
			finalUrl: "",
			want:     models.LoginMethodStandard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProtocol(tt.body, tt.finalUrl))
		})
	}
}
