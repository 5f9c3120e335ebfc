package shortener_test

import (
	"strings"
	"testing"

	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/stretchr/testify/assert"
)

func TestValidateDestination(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "https url", input: "https://example.com/a"},
		{name: "http url with port and query", input: "http://example.com:8080/path?foo=bar"},
		{name: "upper case scheme", input: "HTTPS://EXAMPLE.COM/path"},
		{name: "fragment is kept", input: "https://example.com/path#section"},
		{name: "empty", input: "", wantErr: true},
		{name: "missing scheme", input: "example.com/path", wantErr: true},
		{name: "relative path", input: "/just/a/path", wantErr: true},
		{name: "unsupported scheme", input: "ftp://example.com/file", wantErr: true},
		{name: "javascript scheme", input: "javascript:alert(1)", wantErr: true},
		{name: "missing host", input: "https:///path", wantErr: true},
		{name: "port without host", input: "https://:8080/path", wantErr: true},
		{name: "unparseable", input: "://invalid", wantErr: true},
		{name: "too long", input: "https://example.com/" + strings.Repeat("a", shortener.MaxDestinationLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := shortener.ValidateDestination(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, shortener.ErrInvalidInput)

				return
			}

			assert.NoError(t, err)
		})
	}
}
