package services

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
)

//go:embed data/reference.yaml
var embeddedReference []byte

// ErrOverlappingLists is returned when a domain is both known malicious and
// known legitimate.
var ErrOverlappingLists = errors.New("reference lists overlap")

// ReferenceSet holds the deny-list and allow-list used by the classifier.
// It is immutable once built and safe for concurrent reads.
type ReferenceSet struct {
	version    string
	malicious  map[string]models.ReferenceEntry
	legitimate map[string]struct{}
}

// NewReferenceSet normalizes every entry and rejects data sets where the two
// lists share a domain.
func NewReferenceSet(data models.ReferenceData) (*ReferenceSet, error) {
	rs := &ReferenceSet{
		version:    data.Version,
		malicious:  make(map[string]models.ReferenceEntry, len(data.KnownMalicious)),
		legitimate: make(map[string]struct{}, len(data.KnownLegitimate)),
	}

	for _, e := range data.KnownMalicious {
		d := Normalize(e.Domain)
		if d == "" {
			continue
		}
		if e.ReportCount < 0 {
			return nil, fmt.Errorf("negative report count for %q", e.Domain)
		}
		e.Domain = d
		rs.malicious[d] = e
	}

	var overlap []string
	for _, raw := range data.KnownLegitimate {
		d := Normalize(raw)
		if d == "" {
			continue
		}
		if _, bad := rs.malicious[d]; bad {
			overlap = append(overlap, d)
			continue
		}
		rs.legitimate[d] = struct{}{}
	}

	if len(overlap) > 0 {
		sort.Strings(overlap)
		return nil, fmt.Errorf("%w: %s", ErrOverlappingLists, strings.Join(overlap, ", "))
	}

	return rs, nil
}

// Version returns the data set version string
func (rs *ReferenceSet) Version() string {
	return rs.version
}

// Malicious looks up a normalized token on the deny-list
func (rs *ReferenceSet) Malicious(token string) (models.ReferenceEntry, bool) {
	e, ok := rs.malicious[token]
	return e, ok
}

// Legitimate reports whether a normalized token is on the allow-list
func (rs *ReferenceSet) Legitimate(token string) bool {
	_, ok := rs.legitimate[token]
	return ok
}

// MaliciousDomains returns the deny-list in sorted order
func (rs *ReferenceSet) MaliciousDomains() []string {
	return sortedKeys(rs.malicious)
}

// LegitimateDomains returns the allow-list in sorted order
func (rs *ReferenceSet) LegitimateDomains() []string {
	return sortedKeys(rs.legitimate)
}

// Counts returns the sizes of the deny-list and allow-list
func (rs *ReferenceSet) Counts() (malicious, legitimate int) {
	return len(rs.malicious), len(rs.legitimate)
}

// Data returns the normalized lists in sorted order, the form they are
// persisted in.
func (rs *ReferenceSet) Data() models.ReferenceData {
	data := models.ReferenceData{
		Version:         rs.version,
		KnownMalicious:  make([]models.ReferenceEntry, 0, len(rs.malicious)),
		KnownLegitimate: rs.LegitimateDomains(),
	}
	for _, d := range rs.MaliciousDomains() {
		data.KnownMalicious = append(data.KnownMalicious, rs.malicious[d])
	}
	return data
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseReferenceData decodes a YAML reference document
func ParseReferenceData(r io.Reader) (models.ReferenceData, error) {
	var data models.ReferenceData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		return data, fmt.Errorf("failed to decode reference data: %w", err)
	}
	return data, nil
}

// DefaultReferenceData returns the data set compiled into the binary
func DefaultReferenceData() models.ReferenceData {
	data, err := ParseReferenceData(bytes.NewReader(embeddedReference))
	if err != nil {
		panic(fmt.Sprintf("embedded reference data is invalid: %v", err))
	}
	return data
}

// DefaultReferenceSet builds a ReferenceSet from the embedded data
func DefaultReferenceSet() *ReferenceSet {
	rs, err := NewReferenceSet(DefaultReferenceData())
	if err != nil {
		panic(fmt.Sprintf("embedded reference data is invalid: %v", err))
	}
	return rs
}

// LoadReferenceFile reads a YAML reference document from disk
func LoadReferenceFile(path string) (*ReferenceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file: %w", err)
	}
	defer f.Close()

	data, err := ParseReferenceData(f)
	if err != nil {
		return nil, err
	}
	return NewReferenceSet(data)
}

// ParseDomainList reads one domain per line. Blank lines and '#' comments
// are skipped, entries are normalized and de-duplicated in input order.
func ParseDomainList(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var domains []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		domain := Normalize(line)
		if domain == "" {
			continue
		}
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}
	return domains, scanner.Err()
}
