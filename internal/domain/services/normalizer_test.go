package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare domain", "absa.co.za", "absa.co.za"},
		{"https", "https://absa.co.za", "absa.co.za"},
		{"http with path", "http://shein-sa-deals.co.za/deals/today", "shein-sa-deals.co.za"},
		{"uppercase scheme and host", "HTTPS://NedBank.co.za", "nedbank.co.za"},
		{"query without path", "fnb.co.za?ref=sms", "fnb.co.za?ref=sms"},
		{"fragment", "takealot.com#cart", "takealot.com#cart"},
		{"query after path", "https://fnb.co.za/login?ref=sms", "fnb.co.za"},
		{"long query", "example.com?ref=" + strings.Repeat("x", 60), "example.com?ref=" + strings.Repeat("x", 60)},
		{"ussd code", "*120*321#", "*120*321#"},
		{"port", "https://nedbank-secure-login.com:8443/login", "nedbank-secure-login.com"},
		{"userinfo", "https://absa.co.za@evil-site.com/login", "evil-site.com"},
		{"trailing dot", "absa.co.za.", "absa.co.za"},
		{"whitespace", "  shein.com \n", "shein.com"},
		{"phone number", "+27 11 234 5678", "+27 11 234 5678"},
		{"scheme only", "https://", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"HTTPS://Mybank-Secure-Portal.xyz:443/a?b#c",
		"http://user:pw@fnb.co.za",
		"0821234567",
		"*120*321#",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestStripScheme(t *testing.T) {
	s, ok := StripScheme("HtTp://example.com")
	assert.True(t, ok)
	assert.Equal(t, "example.com", s)

	s, ok = StripScheme("ftp://example.com")
	assert.False(t, ok)
	assert.Equal(t, "ftp://example.com", s)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "absa.co.za", TruncatePath("absa.co.za/personal/login"))
	assert.Equal(t, "absa.co.za?x=1#top", TruncatePath("absa.co.za?x=1#top"))
	assert.Equal(t, "*120*321#", TruncatePath("*120*321#"))
}
