package services

import (
	"net"
	"strings"
)

var schemes = []string{"https://", "http://"}

// Normalize reduces a raw URL or phone number to the token compared against
// the reference lists: scheme stripped, path dropped, host canonicalised.
// Phone numbers come through unchanged apart from surrounding whitespace.
func Normalize(raw string) string {
	token := strings.TrimSpace(raw)
	token, hadScheme := StripScheme(token)
	token = TruncatePath(token)
	if hadScheme {
		token = stripUserInfo(token)
	}
	return canonicalHost(token)
}

// StripScheme removes a leading http:// or https:// in any letter case and
// reports whether one was present.
func StripScheme(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, scheme := range schemes {
		if strings.HasPrefix(lower, scheme) {
			return s[len(scheme):], true
		}
	}
	return s, false
}

// TruncatePath cuts s at the first path separator. Query and fragment stay
// part of the token, so USSD codes such as *120*321# survive intact.
func TruncatePath(s string) string {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i]
	}
	return s
}

// stripUserInfo drops "user:pass@" so that https://bank.co.za@evil.com is
// judged on evil.com.
func stripUserInfo(s string) string {
	if i := strings.LastIndex(s, "@"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// canonicalHost lower-cases the token and removes a numeric port and a
// trailing root dot.
func canonicalHost(s string) string {
	s = strings.ToLower(s)
	if host, port, err := net.SplitHostPort(s); err == nil && isDigits(port) {
		s = host
	}
	return strings.TrimSuffix(s, ".")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
