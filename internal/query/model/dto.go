// Package model provides request and response types for the query module.
package model

import (
	"github.com/festy23/evidence_bot/internal/prompt"
)

// QueryRequest is the body of POST /query, /report and /intent.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse carries the model reply and, when the reply is valid JSON, its parsed form.
type QueryResponse struct {
	Query    string         `json:"query"`
	Response string         `json:"response"`
	Answer   *prompt.Answer `json:"answer,omitempty"`
}

// IntentResponse carries the classified intent of a query.
type IntentResponse struct {
	Query  string         `json:"query"`
	Intent *prompt.Intent `json:"intent"`
	Raw    string         `json:"raw,omitempty"`
}
