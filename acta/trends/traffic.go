package trends

import (
	"net/url"
	"strconv"
	"strings"

	"uqbar/config"
)

// ParseTraffic converts an approximate traffic string like "1.5M+" or
// "500K+" to a float volume. Unparseable input falls back to the default.
func ParseTraffic(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return config.DefaultVolume
	}

	multiplier := 1.0
	switch last := s[len(s)-1]; last {
	case 'K', 'k':
		multiplier = 1e3
		s = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1e6
		s = s[:len(s)-1]
	case 'B', 'b':
		multiplier = 1e9
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return config.DefaultVolume
	}
	return v * multiplier
}

// IsPaywalled reports whether the URL's host belongs to a known paywalled
// outlet. Subdomains of a paywalled domain count.
func IsPaywalled(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	for domain := range config.PaywallDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
