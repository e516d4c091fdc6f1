package model

import (
	"errors"
	"fmt"
)

// Timestamp fields named in MalformedRecordError.
const (
	FieldCreatedAt = "created_at"
	FieldMergedAt  = "merged_at"
)

// ErrMalformedRecord matches every *MalformedRecordError via errors.Is.
var ErrMalformedRecord = errors.New("malformed pull request record")

// MalformedRecordError reports a timestamp that does not match TimestampLayout.
type MalformedRecordError struct {
	PRNumber int
	Field    string
	Value    string
	Err      error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("pull request #%d: malformed %s %q", e.PRNumber, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrMalformedRecord) true.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
