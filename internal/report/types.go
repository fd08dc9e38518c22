// Package report turns classified crash reports into crash artifacts on disk.
package report

import (
	"errors"
	"fmt"
	"time"

	"gpucrash/internal/classify"
	"gpucrash/internal/fsutil"
	"gpucrash/internal/signature"

	"github.com/google/uuid"
)

// ProblemType is the problem type of every GPU lockup record
const ProblemType = "Lockup"

// ErrExists is returned when the artifact for a report is already present
var ErrExists = fsutil.ErrExists

// Format selects the record encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a configured format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatYAML, FormatJSON, FormatCBOR:
		return Format(name), nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", name)
	}
}

// Attachment is one supplementary file of a report. Size and SHA256 describe
// the uncompressed content.
type Attachment struct {
	Name        string      `yaml:"name" json:"name" cbor:"name"`
	Compression Compression `yaml:"compression" json:"compression" cbor:"compression"`
	Size        int         `yaml:"size" json:"size" cbor:"size"`
	SHA256      string      `yaml:"sha256" json:"sha256" cbor:"sha256"`
	Data        Blob        `yaml:"data" json:"data" cbor:"data"`
}

// FlaggedRegister is a register that carried a non-zero value
type FlaggedRegister struct {
	Key   string `yaml:"key" json:"key" cbor:"key"`
	Value string `yaml:"value" json:"value" cbor:"value"`
}

// SignatureRecord is the serialized crash signature
type SignatureRecord struct {
	ShortHash string            `yaml:"short_hash" json:"short_hash" cbor:"short_hash"`
	Flagged   []FlaggedRegister `yaml:"flagged" json:"flagged" cbor:"flagged"`
	Rendered  string            `yaml:"rendered" json:"rendered" cbor:"rendered"`
}

// Record is the on-disk crash artifact
type Record struct {
	ID                 string           `yaml:"id" json:"id" cbor:"id"`
	CreatedAt          time.Time        `yaml:"created_at" json:"created_at" cbor:"created_at"`
	ProblemType        string           `yaml:"problem_type" json:"problem_type" cbor:"problem_type"`
	Title              string           `yaml:"title" json:"title" cbor:"title"`
	DuplicateSignature string           `yaml:"duplicate_signature" json:"duplicate_signature" cbor:"duplicate_signature"`
	Chipset            string           `yaml:"chipset,omitempty" json:"chipset,omitempty" cbor:"chipset,omitempty"`
	Tags               []string         `yaml:"tags" json:"tags" cbor:"tags"`
	Signature          *SignatureRecord `yaml:"signature,omitempty" json:"signature,omitempty" cbor:"signature,omitempty"`
	HashAlgorithm      string           `yaml:"hash_algorithm,omitempty" json:"hash_algorithm,omitempty" cbor:"hash_algorithm,omitempty"`
	Attachments        []Attachment     `yaml:"attachments,omitempty" json:"attachments,omitempty" cbor:"attachments,omitempty"`
}

// NewRecord builds a record from a classified report
func NewRecord(classified classify.ClassifiedReport, alg signature.Algorithm, now time.Time) Record {
	rec := Record{
		ID:                 uuid.NewString(),
		CreatedAt:          now.UTC(),
		ProblemType:        ProblemType,
		Title:              classified.Title,
		DuplicateSignature: classified.DuplicateSignature(),
		Tags:               classified.Tags.Slice(),
	}

	if name, ok := classified.ChipsetName(); ok {
		rec.Chipset = name
	}

	if sig := classified.Signature; sig != nil {
		flagged := make([]FlaggedRegister, 0, len(sig.Flagged))
		for _, reading := range sig.Flagged {
			flagged = append(flagged, FlaggedRegister{Key: reading.Key, Value: reading.Hex()})
		}
		rec.Signature = &SignatureRecord{
			ShortHash: sig.ShortHash,
			Flagged:   flagged,
			Rendered:  sig.Rendered,
		}
		rec.HashAlgorithm = string(alg)
	}

	return rec
}

// Attachment returns the named attachment, decompressed
func (r Record) Attachment(name string) ([]byte, error) {
	for _, a := range r.Attachments {
		if a.Name == name {
			return Decompress(a.Data, a.Compression, a.Size)
		}
	}
	return nil, errors.New("no attachment named " + name)
}
