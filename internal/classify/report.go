package classify

import (
	"sort"

	"gpucrash/internal/signature"
)

const (
	// BaseTitle is the title of every GPU lockup report before decoration.
	BaseTitle = "GPU lockup"
	// TagFreeze is carried by every GPU lockup report.
	TagFreeze = "freeze"
)

// Tags is a set of report tags.
type Tags map[string]struct{}

// NewTags returns a set holding tags.
func NewTags(tags ...string) Tags {
	t := make(Tags, len(tags))
	for _, tag := range tags {
		t.Add(tag)
	}
	return t
}

// Add inserts tag; empty tags are ignored.
func (t Tags) Add(tag string) {
	if tag != "" {
		t[tag] = struct{}{}
	}
}

// Has reports whether tag is in the set.
func (t Tags) Has(tag string) bool {
	_, ok := t[tag]
	return ok
}

// Slice returns the tags sorted.
func (t Tags) Slice() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// ClassifiedReport is the outcome of classifying one GPU lockup.
type ClassifiedReport struct {
	Chipset   *string
	Title     string
	Tags      Tags
	Signature *signature.CrashSignature
}

// DuplicateSignature is the key crash triage groups reports on.
func (r ClassifiedReport) DuplicateSignature() string {
	return r.Title
}

// ChipsetName returns the chipset, if one was identified.
func (r ClassifiedReport) ChipsetName() (string, bool) {
	if r.Chipset == nil {
		return "", false
	}
	return *r.Chipset, true
}
