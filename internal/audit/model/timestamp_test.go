package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-01-01T12:30:45Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC), ts)
	})

	for _, value := range []string{
		"",
		"not-a-date",
		"2024-01-01",
		"2024-01-01T12:30:45",
		"2024-01-01T12:30:45.123Z",
		"2024-01-01T12:30:45+00:00",
		"2024-01-01 12:30:45Z",
		"2024-13-01T12:30:45Z",
	} {
		t.Run("rejects "+value, func(t *testing.T) {
			_, err := ParseTimestamp(value)
			assert.Error(t, err)
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, "2024-01-01T09:00:00Z", FormatTimestamp(time.Date(2024, 1, 1, 12, 0, 0, 0, loc)))
}

func TestMalformedRecordError(t *testing.T) {
	cause := errors.New("parse failure")
	var err error = &MalformedRecordError{PRNumber: 7, Field: FieldCreatedAt, Value: "not-a-date", Err: cause}

	assert.Equal(t, `pull request #7: malformed created_at "not-a-date"`, err.Error())
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorIs(t, err, cause)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 7, malformed.PRNumber)
}
