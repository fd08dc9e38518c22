package report

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gpucrash/internal/config"
	"gpucrash/internal/fsutil"
	"gpucrash/internal/logging"
)

// Sink writes crash records into the crash directory
type Sink struct {
	dir         string
	format      Format
	compression Compression
	threshold   int
	logger      *logging.Logger
	uid         func() int
}

// NewSink creates a sink from the report settings
func NewSink(cfg config.ReportConfig, logger *logging.Logger) (*Sink, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	compression, err := ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	if cfg.Dir == "" {
		return nil, errors.New("report directory is empty")
	}

	return &Sink{
		dir:         cfg.Dir,
		format:      format,
		compression: compression,
		threshold:   cfg.CompressThresholdBytes,
		logger:      logger,
		uid:         os.Geteuid,
	}, nil
}

// Path returns the artifact path for rec
func (s *Sink) Path(rec Record) string {
	hash := "nosig"
	if rec.Signature != nil && rec.Signature.ShortHash != "" {
		hash = rec.Signature.ShortHash
	}
	name := "gpu-lockup-" + hash + "-" + strconv.Itoa(s.uid()) + ".crash"
	return filepath.Join(s.dir, name)
}

// Attachments converts collected files into record attachments sorted by
// name, compressing content at or above the size threshold.
func (s *Sink) Attachments(files map[string][]byte) ([]Attachment, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	attachments := make([]Attachment, 0, len(names))
	for _, name := range names {
		data := files[name]
		sum := sha256.Sum256(data)

		stored, compression := data, CompressionNone
		if s.compression != CompressionNone && len(data) >= s.threshold {
			var err error
			stored, compression, err = Compress(data, s.compression)
			if err != nil {
				return nil, fmt.Errorf("attachment %s: %w", name, err)
			}
		}

		attachments = append(attachments, Attachment{
			Name:        name,
			Compression: compression,
			Size:        len(data),
			SHA256:      hex.EncodeToString(sum[:]),
			Data:        stored,
		})
	}
	return attachments, nil
}

// Write encodes rec and creates its artifact. An existing artifact is never
// overwritten; the error then wraps ErrExists. On any other failure the
// partially written file is removed.
func (s *Sink) Write(rec Record) (string, error) {
	path := s.Path(rec)

	data, err := Encode(rec, s.format)
	if err != nil {
		return "", err
	}

	if err := fsutil.EnsureDirectory(s.dir); err != nil {
		return "", err
	}

	f, err := fsutil.CreateExclusive(path)
	if err != nil {
		if errors.Is(err, fsutil.ErrExists) {
			s.logger.Info("report.write.exists", "Report already exists", map[string]interface{}{
				"path": path,
			})
		}
		return path, err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		s.discard(path)
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		s.discard(path)
		return "", fmt.Errorf("failed to close report %s: %w", path, err)
	}

	s.logger.Info("report.write.complete", "Crash report written", map[string]interface{}{
		"path":        path,
		"format":      string(s.format),
		"bytes":       len(data),
		"attachments": len(rec.Attachments),
	})
	return path, nil
}

func (s *Sink) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("report.cleanup_failed", "Failed to remove partial report", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

// Read loads the record stored at path in the sink's format
func (s *Sink) Read(path string) (Record, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Record{}, fmt.Errorf("failed to read report: %w", err)
	}
	return Decode(data, s.format)
}
