// Package hook runs one crash-report pass: gate, collect, classify, write.
package hook

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"gpucrash/internal/classify"
	"gpucrash/internal/collect"
	"gpucrash/internal/gpu"
	"gpucrash/internal/logging"
	"gpucrash/internal/report"
	"gpucrash/internal/signature"
	"gpucrash/internal/suppress"
	"gpucrash/internal/tui"
)

// ListingSource supplies the PCI device listing
type ListingSource interface {
	Listing(ctx context.Context) (string, error)
}

// DumpSource supplies the GPU error dump
type DumpSource interface {
	Dump(ctx context.Context) (string, error)
}

// DeviceSource supplies additional devices not visible to lspci
type DeviceSource interface {
	Detect() gpu.Inventory
}

// AttachmentSource gathers supplementary files
type AttachmentSource interface {
	Collect(ctx context.Context) map[string][]byte
}

// Classifier classifies a lockup
type Classifier interface {
	Classify(pciListing, dump string) classify.ClassifiedReport
}

// Writer persists a record
type Writer interface {
	Attachments(files map[string][]byte) ([]report.Attachment, error)
	Write(rec report.Record) (string, error)
}

// Confirmer asks whether rec should be written. It returns the names of
// attachments to drop.
type Confirmer func(rec report.Record) (tui.Decision, []string, error)

// Dependencies are the collaborators of a Hook. Devices and Attachments
// are optional.
type Dependencies struct {
	PCI         ListingSource
	Dumps       DumpSource
	Devices     DeviceSource
	Attachments AttachmentSource
	Classifier  Classifier
	Algorithm   signature.Algorithm
	Sink        Writer
	Gate        suppress.Gate
}

// Options tune a single run
type Options struct {
	// Force skips the duplicate-suppression gate
	Force bool
	// Confirm, when set, is asked before the report is written
	Confirm Confirmer
}

// Result describes the outcome of a run
type Result struct {
	Path       string
	Record     report.Record
	Suppressed bool
	Declined   bool
	Reason     string
}

// Hook orchestrates a crash-report run
type Hook struct {
	deps   Dependencies
	logger *logging.Logger
	now    func() time.Time
}

// New creates a hook
func New(deps Dependencies, logger *logging.Logger) *Hook {
	return &Hook{deps: deps, logger: logger, now: time.Now}
}

// Classify gathers the inputs and classifies them without writing anything
func (h *Hook) Classify(ctx context.Context) (classify.ClassifiedReport, string, string) {
	listing := h.listing(ctx)
	dump := h.dump(ctx)
	return h.deps.Classifier.Classify(listing, dump), listing, dump
}

// Run performs one complete pass. Only a failure to produce the artifact is
// returned as an error; suppression and a declined prompt are reported in
// the Result.
func (h *Hook) Run(ctx context.Context, opts Options) (Result, error) {
	h.logger.Info("hook.run.start", "Crash report run started", map[string]interface{}{
		"force": opts.Force,
	})

	if !opts.Force {
		if res, stop := h.checkGate(h.deps.Gate.Allow()); stop {
			return res, nil
		}
	}

	classified, listing, dump := h.Classify(ctx)
	duplicate := classified.DuplicateSignature()

	// Without a dump signature the title only names the chipset, so the
	// report carries no dedup key.
	key := ""
	if classified.Signature != nil {
		key = duplicate
	}

	if !opts.Force {
		if res, stop := h.checkGate(h.deps.Gate.AllowSignature(key)); stop {
			return res, nil
		}
	}

	var files map[string][]byte
	if h.deps.Attachments != nil {
		files = h.deps.Attachments.Collect(ctx)
	}
	if files == nil {
		files = map[string][]byte{}
	}
	if listing != "" {
		files[collect.AttachmentLspci] = []byte(listing)
	}
	if dump != "" {
		files[collect.AttachmentGpuDump] = []byte(dump)
	}

	rec := report.NewRecord(classified, h.deps.Algorithm, h.now())
	attachments, err := h.deps.Sink.Attachments(files)
	if err != nil {
		return Result{Record: rec}, fmt.Errorf("failed to prepare attachments: %w", err)
	}
	rec.Attachments = attachments

	if opts.Confirm != nil {
		decision, excluded, err := opts.Confirm(rec)
		if err != nil {
			return Result{Record: rec}, err
		}
		if decision != tui.DecisionConfirm {
			h.logger.Info("hook.run.declined", "Report discarded at confirmation", nil)
			return Result{Record: rec, Declined: true, Reason: "declined by user"}, nil
		}
		rec.Attachments = slices.DeleteFunc(rec.Attachments, func(a report.Attachment) bool {
			return slices.Contains(excluded, a.Name)
		})
	}

	path, err := h.deps.Sink.Write(rec)
	if err != nil {
		h.logger.Error("hook.run.write_failed", "Failed to write crash report", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return Result{Path: path, Record: rec}, fmt.Errorf("failed to write crash report: %w", err)
	}

	if err := h.deps.Gate.Record(key, path); err != nil {
		h.logger.Warn("hook.gate.record_failed", "Failed to record filed report", map[string]interface{}{
			"error": err.Error(),
		})
	}

	h.logger.Info("hook.run.complete", "Crash report filed", map[string]interface{}{
		"path":      path,
		"signature": duplicate,
	})
	return Result{Path: path, Record: rec}, nil
}

func (h *Hook) checkGate(err error) (Result, bool) {
	if err == nil {
		return Result{}, false
	}
	if errors.Is(err, suppress.ErrSuppressed) {
		h.logger.Info("hook.run.suppressed", "Crash report suppressed", map[string]interface{}{
			"reason": err.Error(),
		})
		return Result{Suppressed: true, Reason: err.Error()}, true
	}
	h.logger.Warn("hook.gate.failed", "Suppression gate unavailable, continuing", map[string]interface{}{
		"error": err.Error(),
	})
	return Result{}, false
}

func (h *Hook) listing(ctx context.Context) string {
	listing, err := h.deps.PCI.Listing(ctx)
	if err != nil {
		h.logger.Warn("hook.input.pci_unavailable", "Continuing without PCI listing", map[string]interface{}{
			"error": err.Error(),
		})
		listing = ""
	}
	if h.deps.Devices != nil {
		listing = h.deps.Devices.Detect().AppendTo(listing)
	}
	return listing
}

func (h *Hook) dump(ctx context.Context) string {
	dump, err := h.deps.Dumps.Dump(ctx)
	if err != nil {
		h.logger.Warn("hook.input.dump_unavailable", "Continuing without GPU dump", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	return dump
}
