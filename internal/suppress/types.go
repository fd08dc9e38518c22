package suppress

import (
	"errors"
	"time"
)

// ErrSuppressed is returned when a report must not be written
var ErrSuppressed = errors.New("report suppressed")

// Gate decides whether a report may be produced
type Gate interface {
	// Allow is queried before any collection work
	Allow() error
	// AllowSignature is queried once the duplicate signature is known; an
	// empty signature means the report has none
	AllowSignature(signature string) error
	// Record notes a report that was written, with signature empty when the
	// report has none
	Record(signature, reportPath string) error
}

// Lease describes the most recently written report
type Lease struct {
	Signature  string    `json:"signature"`
	ReportPath string    `json:"report_path"`
	SinceTS    time.Time `json:"since_ts"`
}

// LedgerEntry records one filed report signature
type LedgerEntry struct {
	Signature  string    `json:"signature"`
	ReportPath string    `json:"report_path"`
	FiledAt    time.Time `json:"filed_at"`
}

type ledgerFile struct {
	Entries []LedgerEntry `json:"entries"`
}
