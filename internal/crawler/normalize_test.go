package crawler

import (
	"errors"
	"testing"
)

// TestNormalize tests dedup key derivation against literal fixtures.
// The fragment handling quirk (checking '#' in the original string, cutting
// from the derived key) is intentional behavior; these fixtures pin it.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		rawURL         string
		removeFragment bool
		want           string
	}{
		{
			name:           "host only",
			rawURL:         "https://example.com",
			removeFragment: true,
			want:           "example.com",
		},
		{
			name:           "host with root slash",
			rawURL:         "https://example.com/",
			removeFragment: true,
			want:           "example.com",
		},
		{
			name:           "trailing slash collapses",
			rawURL:         "https://a.com/x/",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "no trailing slash unchanged",
			rawURL:         "https://a.com/x",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "scheme is not part of the key",
			rawURL:         "http://a.com/x",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "query string is not part of the key",
			rawURL:         "https://a.com/x?page=2&sort=asc",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "fragment removed when requested",
			rawURL:         "https://a.com/x#section",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "fragment kept when not requested",
			rawURL:         "https://a.com/x#section",
			removeFragment: false,
			want:           "a.com/x#section",
		},
		{
			name:           "fragment then trailing slash",
			rawURL:         "https://a.com/x/#section",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "port is not part of the key",
			rawURL:         "https://a.com:8443/x",
			removeFragment: true,
			want:           "a.com/x",
		},
		{
			name:           "deep path preserved",
			rawURL:         "https://a.com/blog/2024/post-1",
			removeFragment: true,
			want:           "a.com/blog/2024/post-1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.rawURL, tt.removeFragment)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.rawURL, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q, %v) = %q, want %q", tt.rawURL, tt.removeFragment, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies that re-normalizing a scheme-wrapped key
// yields the same key.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com",
		"https://example.com/",
		"https://a.com/x/",
		"https://a.com/x?q=1#frag",
		"http://a.com:8080/deep/path/",
	}

	for _, input := range inputs {
		first, err := Normalize(input, true)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", input, err)
		}
		second, err := Normalize("https://"+first, true)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", "https://"+first, err)
		}
		if first != second {
			t.Errorf("normalization not idempotent for %q: first %q, second %q", input, first, second)
		}
	}
}

// TestNormalizeMalformed verifies that unparseable input fails with
// ErrMalformedURL.
func TestNormalizeMalformed(t *testing.T) {
	t.Parallel()

	_, err := Normalize("http://exa mple.com/", true)
	if err == nil {
		t.Fatal("expected error for URL with space in host")
	}
	if !errors.Is(err, ErrMalformedURL) {
		t.Errorf("expected ErrMalformedURL, got %v", err)
	}
}
