package diag

import "regexp"

// Redactor strips secret values from collected text before packaging.
type Redactor struct {
	patterns []redactionPattern
}

type redactionPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// NewRedactor creates a redactor covering dotenv, YAML and URL secrets.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactionPattern{
			// Dotenv entries whose key names a secret
			{
				regex:       regexp.MustCompile(`(?im)^(\s*(?:export\s+)?[A-Z0-9_]*(?:KEY|TOKEN|SECRET|PASSWORD|PASSPHRASE|CREDENTIAL)[A-Z0-9_]*)\s*=.*$`),
				replacement: `$1=[REDACTED]`,
			},
			// YAML-style secrets
			{
				regex:       regexp.MustCompile(`(?i)(api[_-]?key|token|secret|password|passphrase):\s*(.+)`),
				replacement: `$1: [REDACTED]`,
			},
			// Bearer tokens
			{
				regex:       regexp.MustCompile(`(?i)Bearer\s+([A-Za-z0-9_\-.]+)`),
				replacement: `Bearer [REDACTED]`,
			},
			// Connection strings with passwords
			{
				regex:       regexp.MustCompile(`(?i)(postgres|mysql|mongodb|redis)://([^:/]+):([^@]+)@`),
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
