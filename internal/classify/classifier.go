// Package classify turns a PCI listing and a GPU error dump into a titled,
// tagged lockup report.
package classify

import (
	"gpucrash/internal/catalog"
	"gpucrash/internal/logging"
	"gpucrash/internal/signature"
)

// Identifier resolves a device listing to a chipset name.
type Identifier interface {
	Identify(deviceDescription string) (string, bool)
}

// Deriver computes the signature of a dump.
type Deriver interface {
	Derive(dump string) (signature.CrashSignature, bool)
}

// Classifier composes chipset identification and signature derivation. It
// performs no I/O.
type Classifier struct {
	identifier Identifier
	deriver    Deriver
	logger     *logging.Logger
}

// New creates a Classifier. logger may be nil.
func New(identifier Identifier, deriver Deriver, logger *logging.Logger) *Classifier {
	return &Classifier{
		identifier: identifier,
		deriver:    deriver,
		logger:     logger,
	}
}

// NewDefault uses the built-in catalog and MD5 signatures.
func NewDefault(logger *logging.Logger) *Classifier {
	return New(catalog.NewDefault(), signature.New(signature.AlgorithmMD5), logger)
}

// Classify builds the report for one lockup. Both inputs may be empty.
func (c *Classifier) Classify(pciListing, dump string) ClassifiedReport {
	report := ClassifiedReport{
		Title: BaseTitle,
		Tags:  NewTags(TagFreeze),
	}

	if chipset, ok := c.identifier.Identify(pciListing); ok {
		report.Chipset = &chipset
		report.Title = "[" + chipset + "] " + report.Title
		report.Tags.Add(chipset)
		c.logger.Info("classify.chipset.identified", "Chipset identified", map[string]interface{}{
			"chipset": chipset,
		})
	} else {
		c.logger.Info("classify.chipset.unknown", "No catalog profile matched the device listing", nil)
	}

	if sig, ok := c.deriver.Derive(dump); ok {
		report.Signature = &sig
		report.Title += " " + sig.Rendered
		c.logger.Info("classify.signature.derived", "Dump signature derived", map[string]interface{}{
			"short_hash": sig.ShortHash,
			"flagged":    len(sig.Flagged),
			"rendered":   sig.Rendered,
		})
	} else {
		c.logger.Info("classify.signature.absent", "No dump available, report carries no signature", nil)
	}

	return report
}
