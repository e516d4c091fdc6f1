package config

import "errors"

// AuditConfig holds audit aggregation settings.
type AuditConfig struct {
	// ReferenceReviewer is the login whose review history is reported.
	ReferenceReviewer string
	// SkipMalformed drops PRs with unparseable timestamps instead of failing.
	SkipMalformed bool
	// Parallel computes the four reports concurrently.
	Parallel bool
	// CSVPath optionally points at a CSV file appended to the model context.
	CSVPath string
}

// LoadAuditConfigFromEnv loads audit settings from environment variables.
func LoadAuditConfigFromEnv() AuditConfig {
	return AuditConfig{
		ReferenceReviewer: GetEnv("AUDIT_REFERENCE_REVIEWER", "Alice"),
		SkipMalformed:     GetEnvBool("AUDIT_SKIP_MALFORMED", false),
		Parallel:          GetEnvBool("AUDIT_PARALLEL", true),
		CSVPath:           GetEnv("AUDIT_CSV_PATH", ""),
	}
}

// Validate validates audit settings.
func (c AuditConfig) Validate() error {
	if c.ReferenceReviewer == "" {
		return errors.New("AUDIT_REFERENCE_REVIEWER is required")
	}
	return nil
}
