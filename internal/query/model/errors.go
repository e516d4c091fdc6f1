package model

import "errors"

var (
	// ErrEmptyQuery indicates that the query is empty or whitespace only.
	ErrEmptyQuery = errors.New("query is required")
	// ErrUpstream indicates that the hosting API could not be read.
	ErrUpstream = errors.New("hosting API request failed")
	// ErrCompletion indicates that the model call failed.
	ErrCompletion = errors.New("model completion failed")
)
