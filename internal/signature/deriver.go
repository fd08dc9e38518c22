// Package signature derives crash deduplication signatures from GPU error
// dumps.
package signature

import (
	"regexp"
	"strconv"
	"strings"
)

// Registers lists the diagnostic registers inspected in every dump, in the
// order they appear in a rendered signature.
var Registers = [...]string{"EIR", "ESR", "PGTBL_ER", "IPEHR"}

// RegisterReading is one register captured from a dump. Raw holds the hex
// digits exactly as printed, which is what signatures render.
type RegisterReading struct {
	Key     string `yaml:"key" json:"key"`
	Value   uint32 `yaml:"value" json:"value"`
	Raw     string `yaml:"raw" json:"raw"`
	Present bool   `yaml:"-" json:"-"`
}

// String renders the reading as "<KEY>: 0x<raw>" with the digits lower-cased.
func (r RegisterReading) String() string {
	return r.Key + ": " + r.Hex()
}

// Hex returns the printed value as "0x<raw>", lower-cased.
func (r RegisterReading) Hex() string {
	return "0x" + strings.ToLower(r.Raw)
}

// CrashSignature identifies a GPU fault for deduplication. Rendered is the
// only value consumers should group on.
type CrashSignature struct {
	ShortHash string            `yaml:"short_hash" json:"short_hash"`
	Flagged   []RegisterReading `yaml:"flagged,omitempty" json:"flagged,omitempty"`
	Rendered  string            `yaml:"rendered" json:"rendered"`
}

type registerPattern struct {
	key     string
	pattern *regexp.Regexp
}

// Deriver computes CrashSignatures. It holds only compiled, read-only state
// and is safe for concurrent use.
type Deriver struct {
	algorithm Algorithm
	registers []registerPattern
}

// New returns a Deriver hashing dumps with algorithm.
func New(algorithm Algorithm) *Deriver {
	d := &Deriver{
		algorithm: algorithm,
		registers: make([]registerPattern, 0, len(Registers)),
	}
	for _, key := range Registers {
		d.registers = append(d.registers, registerPattern{
			key:     key,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `: 0x([0-9A-Fa-f]+)`),
		})
	}
	return d
}

// Algorithm reports the hash algorithm in use.
func (d *Deriver) Algorithm() Algorithm {
	return d.algorithm
}

// Derive builds the signature of dump. An empty dump has no signature.
func (d *Deriver) Derive(dump string) (CrashSignature, bool) {
	if dump == "" {
		return CrashSignature{}, false
	}

	sig := CrashSignature{
		ShortHash: d.algorithm.ShortHash([]byte(dump)),
		Flagged:   d.Flagged(dump),
	}
	sig.Rendered = Render(sig.ShortHash, sig.Flagged)
	return sig, true
}

// Flagged returns the registers of dump holding a non-zero value, in
// Registers order. Values that do not parse as 32-bit hex are skipped.
func (d *Deriver) Flagged(dump string) []RegisterReading {
	var flagged []RegisterReading
	for _, r := range d.registers {
		m := r.pattern.FindStringSubmatch(dump)
		if m == nil {
			continue
		}
		value, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil || value == 0 {
			continue
		}
		flagged = append(flagged, RegisterReading{
			Key:     r.key,
			Value:   uint32(value),
			Raw:     m[1],
			Present: true,
		})
	}
	return flagged
}

// Render composes the signature string. Two or more flagged registers
// replace the hash entirely.
func Render(shortHash string, flagged []RegisterReading) string {
	switch len(flagged) {
	case 0:
		return shortHash
	case 1:
		return shortHash + " (" + flagged[0].String() + ")"
	default:
		parts := make([]string, 0, len(flagged))
		for _, r := range flagged {
			parts = append(parts, r.String())
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
}
