package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// deviceClass selects lspci lines that describe a display controller.
var deviceClass = regexp.MustCompile(`(?i)(VGA compatible controller|Display controller|3D controller)`)

// slotAddress matches the PCI address an lspci line starts with.
var slotAddress = regexp.MustCompile(`^(?:[0-9A-Fa-f]{4}:)?[0-9A-Fa-f]{2}:[0-9A-Fa-f]{2}\.[0-7]\s`)

type compiledProfile struct {
	name    string
	pattern *regexp.Regexp
}

// Matcher is an immutable, pre-compiled hardware catalog. Profiles are
// scanned in declaration order and the first match wins. A Matcher is safe
// for concurrent use.
type Matcher struct {
	profiles []HardwareProfile
	compiled []compiledProfile
}

// New compiles profiles into a Matcher. The slice is copied.
func New(profiles []HardwareProfile) (*Matcher, error) {
	m := &Matcher{
		profiles: append([]HardwareProfile(nil), profiles...),
		compiled: make([]compiledProfile, 0, len(profiles)),
	}

	for i, p := range profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: empty name", i)
		}
		if p.Pattern == "" {
			return nil, fmt.Errorf("catalog entry %d (%s): empty pattern", i, p.Name)
		}
		re, err := regexp.Compile("(?i)" + p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): invalid pattern: %w", i, p.Name, err)
		}
		m.compiled = append(m.compiled, compiledProfile{name: p.Name, pattern: re})
	}

	return m, nil
}

// NewDefault returns a Matcher over DefaultProfiles.
func NewDefault() *Matcher {
	m, err := New(DefaultProfiles())
	if err != nil {
		panic("catalog: built-in profiles failed to compile: " + err.Error())
	}
	return m
}

// Profiles returns a copy of the catalog in scan order.
func (m *Matcher) Profiles() []HardwareProfile {
	return append([]HardwareProfile(nil), m.profiles...)
}

// Identify resolves a device description to a chipset name. Text spanning
// several lines, or a single lspci line starting with a PCI address, is
// treated as a device listing and handled by IdentifyListing, so only
// display controllers are considered. Any other single line is matched
// directly.
func (m *Matcher) Identify(deviceDescription string) (string, bool) {
	trimmed := strings.TrimSpace(deviceDescription)
	if trimmed == "" {
		return "", false
	}
	if strings.ContainsAny(trimmed, "\r\n") || slotAddress.MatchString(trimmed) {
		return m.IdentifyListing(trimmed)
	}
	return m.MatchLine(trimmed)
}

// IdentifyListing keeps only display controller lines of a device listing
// and returns the chipset of the first candidate that matches the catalog.
func (m *Matcher) IdentifyListing(listing string) (string, bool) {
	for _, line := range CandidateLines(listing) {
		if name, ok := m.MatchLine(line); ok {
			return name, true
		}
	}
	return "", false
}

// MatchLine scans the catalog against one trimmed description line.
func (m *Matcher) MatchLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	for _, p := range m.compiled {
		if p.pattern.MatchString(line) {
			return p.name, true
		}
	}
	return "", false
}

// CandidateLines returns the trimmed lines of listing that describe a
// display controller, in listing order.
func CandidateLines(listing string) []string {
	var candidates []string
	for _, line := range strings.Split(listing, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && deviceClass.MatchString(line) {
			candidates = append(candidates, line)
		}
	}
	return candidates
}
