package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

func TestDefaultReferenceSet(t *testing.T) {
	rs := DefaultReferenceSet()

	malicious, legitimate := rs.Counts()
	assert.Equal(t, 5, malicious)
	assert.Equal(t, 7, legitimate)
	assert.Equal(t, "2024.02", rs.Version())

	entry, ok := rs.Malicious("nedbank-secure-login.com")
	require.True(t, ok)
	assert.Equal(t, 89, entry.ReportCount)

	assert.True(t, rs.Legitimate("absa.co.za"))
	assert.False(t, rs.Legitimate("nedbank-secure-login.com"))

	for _, d := range rs.MaliciousDomains() {
		assert.False(t, rs.Legitimate(d), d)
	}
}

func TestNewReferenceSetNormalizesEntries(t *testing.T) {
	rs, err := NewReferenceSet(models.ReferenceData{
		KnownMalicious:  []models.ReferenceEntry{{Domain: "HTTPS://Bad.Example/path"}},
		KnownLegitimate: []string{"Good.Example.", "", "  "},
	})
	require.NoError(t, err)

	_, ok := rs.Malicious("bad.example")
	assert.True(t, ok)
	assert.Equal(t, []string{"good.example"}, rs.LegitimateDomains())
}

func TestNewReferenceSetRejectsOverlap(t *testing.T) {
	_, err := NewReferenceSet(models.ReferenceData{
		KnownMalicious:  []models.ReferenceEntry{{Domain: "b.example"}, {Domain: "a.example"}},
		KnownLegitimate: []string{"A.example", "b.example", "c.example"},
	})
	require.ErrorIs(t, err, ErrOverlappingLists)
	assert.Contains(t, err.Error(), "a.example, b.example")
}

func TestNewReferenceSetRejectsNegativeCount(t *testing.T) {
	_, err := NewReferenceSet(models.ReferenceData{
		KnownMalicious: []models.ReferenceEntry{{Domain: "bad.example", ReportCount: -1}},
	})
	assert.Error(t, err)
}

func TestParseReferenceData(t *testing.T) {
	doc := `
version: test
known_malicious:
  - domain: bad.example
    report_count: 3
known_legitimate:
  - good.example
`
	data, err := ParseReferenceData(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "test", data.Version)
	require.Len(t, data.KnownMalicious, 1)
	assert.Equal(t, 3, data.KnownMalicious[0].ReportCount)

	_, err = ParseReferenceData(strings.NewReader("unknown_key: 1\n"))
	assert.Error(t, err)

	empty, err := ParseReferenceData(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.KnownMalicious)
}

func TestLoadReferenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("known_legitimate:\n  - good.example\n"), 0o600))

	rs, err := LoadReferenceFile(path)
	require.NoError(t, err)
	assert.True(t, rs.Legitimate("good.example"))

	_, err = LoadReferenceFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseDomainList(t *testing.T) {
	input := `# community blocklist
bad.example
  https://BAD.example/again
other.example # trailing note

`
	domains, err := ParseDomainList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"bad.example", "other.example"}, domains)
}

func TestReferenceSetData(t *testing.T) {
	rs, err := NewReferenceSet(models.ReferenceData{
		Version: "v2",
		KnownMalicious: []models.ReferenceEntry{
			{Domain: "Z-Bad.example", ReportCount: 4},
			{Domain: "https://a-bad.example/x"},
			{Domain: "a-bad.example", ReportCount: 9},
		},
		KnownLegitimate: []string{"www.Good.example", "good.example."},
	})
	require.NoError(t, err)

	data := rs.Data()
	assert.Equal(t, "v2", data.Version)
	require.Len(t, data.KnownMalicious, 2)
	assert.Equal(t, "a-bad.example", data.KnownMalicious[0].Domain)
	assert.Equal(t, 9, data.KnownMalicious[0].ReportCount)
	assert.Equal(t, "z-bad.example", data.KnownMalicious[1].Domain)
	assert.Equal(t, []string{"good.example", "www.good.example"}, data.KnownLegitimate)
}
