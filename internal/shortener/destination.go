package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxDestinationLength bounds stored destination URLs.
const MaxDestinationLength = 2048

// ValidateDestination reports whether rawURL is an absolute http(s) URL with a host.
// The URL is stored exactly as given, so nothing is normalised here.
func ValidateDestination(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: destination url is required", ErrInvalidInput)
	}

	if len(rawURL) > MaxDestinationLength {
		return fmt.Errorf("%w: destination url exceeds %d characters", ErrInvalidInput, MaxDestinationLength)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Scheme comparison is case-insensitive per RFC 3986.
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: destination url must use http or https", ErrInvalidInput)
	}

	if u.Host == "" || u.Hostname() == "" {
		return fmt.Errorf("%w: destination url must include a host", ErrInvalidInput)
	}

	return nil
}
