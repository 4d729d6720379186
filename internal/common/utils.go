package common

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// SanitizeURL trims whitespace and stray quoting that creeps in when a URL is
// pasted into a notebook cell or shell.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)
	for _, pair := range [][2]string{{"\"", "\""}, {"'", "'"}, {"<", ">"}, {"(", ")"}} {
		if strings.HasPrefix(cleaned, pair[0]) && strings.HasSuffix(cleaned, pair[1]) && len(cleaned) >= 2 {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}
	return strings.TrimSpace(cleaned)
}

// ValidateArchiveURL sanitizes rawURL and checks it is an absolute http(s) URL.
func ValidateArchiveURL(rawURL string) (string, error) {
	cleaned := SanitizeURL(rawURL)
	if cleaned == "" {
		return "", fmt.Errorf("archive URL is empty")
	}
	if strings.Contains(cleaned, " ") {
		return "", fmt.Errorf("archive URL contains spaces: %q", cleaned)
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid archive URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("archive URL must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("archive URL has no host: %q", cleaned)
	}
	return cleaned, nil
}
