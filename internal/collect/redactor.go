package collect

import (
	"regexp"
)

// Redactor masks credentials found in collected text
type Redactor struct {
	patterns []redactionPattern
}

type redactionPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a redactor with the patterns seen in X configs and logs
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactionPattern{
			// Quoted xorg.conf options such as: Option "Password" "hunter2"
			{
				regex:       regexp.MustCompile(`(?i)(Option\s+"[^"]*(?:password|passwd|secret|token|key)[^"]*"\s+)"[^"]*"`),
				replacement: `$1"[REDACTED]"`,
			},
			// key=value and key: value forms
			{
				regex:       regexp.MustCompile(`(?i)(^|[^A-Z_])(api[_-]?key|token|secret|password|passwd)\s*[:=]\s*["']?([^"'\s]+)["']?`),
				replacement: `$1$2: [REDACTED]`,
			},
			// Bearer tokens
			{
				regex:       regexp.MustCompile(`(?i)Bearer\s+([A-Za-z0-9_\-\.]+)`),
				replacement: `Bearer [REDACTED]`,
			},
			// Credentials embedded in URLs
			{
				regex:       regexp.MustCompile(`(?i)([a-z][a-z0-9+.-]*)://([^:/\s]+):([^@/\s]+)@`),
				replacement: `$1://$2:[REDACTED]@`,
			},
		},
	}
}

// Redact applies all redaction patterns to the input text
func (r *Redactor) Redact(input string) string {
	result := input
	for _, pattern := range r.patterns {
		result = pattern.regex.ReplaceAllString(result, pattern.replacement)
	}
	return result
}
