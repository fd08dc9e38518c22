package suppress

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gpucrash/internal/fsutil"
	"gpucrash/internal/logging"
)

// LedgerFileName is the name of the ledger file in the state directory
const LedgerFileName = "filed_signatures.json"

// Ledger suppresses reports whose duplicate signature was already filed
type Ledger struct {
	stateDir string
	logger   *logging.Logger
	now      func() time.Time
}

// NewLedger creates a ledger stored in stateDir
func NewLedger(stateDir string, logger *logging.Logger) *Ledger {
	return &Ledger{
		stateDir: stateDir,
		logger:   logger,
		now:      time.Now,
	}
}

func (l *Ledger) ledgerPath() string {
	return filepath.Join(l.stateDir, LedgerFileName)
}

// Allow never suppresses; the ledger needs a signature
func (l *Ledger) Allow() error {
	return nil
}

// AllowSignature returns ErrSuppressed when signature is already filed.
// Unsigned reports are always allowed.
func (l *Ledger) AllowSignature(signature string) error {
	if signature == "" {
		return nil
	}
	entries, err := l.Entries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Signature == signature {
			l.logger.Info("suppress.ledger.duplicate", "Signature already filed", map[string]interface{}{
				"signature":   signature,
				"report_path": entry.ReportPath,
			})
			return fmt.Errorf("signature %q already filed: %w", signature, ErrSuppressed)
		}
	}
	return nil
}

// Record appends signature to the ledger; unsigned reports are not kept
func (l *Ledger) Record(signature, reportPath string) error {
	if signature == "" {
		return nil
	}
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	entries = append(entries, LedgerEntry{
		Signature:  signature,
		ReportPath: reportPath,
		FiledAt:    l.now().UTC(),
	})

	return l.save(entries)
}

// Entries returns the filed signatures in filing order
func (l *Ledger) Entries() ([]LedgerEntry, error) {
	data, err := os.ReadFile(l.ledgerPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var file ledgerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", l.ledgerPath(), err)
	}
	return file.Entries, nil
}

// Forget drops every entry for signature, so the crash can be filed again
func (l *Ledger) Forget(signature string) (int, error) {
	entries, err := l.Entries()
	if err != nil {
		return 0, err
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.Signature != signature {
			kept = append(kept, entry)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := l.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

func (l *Ledger) save(entries []LedgerEntry) error {
	if err := fsutil.EnsureDirectory(l.stateDir); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(ledgerFile{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := fsutil.AtomicWriteFile(l.ledgerPath(), data, fsutil.DefaultFilePermissions, l.logger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
