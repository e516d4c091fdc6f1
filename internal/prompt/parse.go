package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotJSON is returned when a model reply does not decode as the expected JSON object.
var ErrNotJSON = errors.New("model reply is not valid JSON")

// Answer is the structured reply requested by AuditPrompt.
type Answer struct {
	Description string          `json:"description"`
	CSV         json.RawMessage `json:"csv,omitempty"`
}

// Intent is the structured reply requested by IntentPrompt.
type Intent struct {
	Intent     string         `json:"intent"`
	Parameters map[string]any `json:"parameters"`
}

// ParseAnswer decodes a reply to AuditPrompt.
func ParseAnswer(reply string) (*Answer, error) {
	var answer Answer
	if err := decode(reply, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// ParseIntent decodes a reply to IntentPrompt. Unrecognised intents become IntentUnknown.
func ParseIntent(reply string) (*Intent, error) {
	var intent Intent
	if err := decode(reply, &intent); err != nil {
		return nil, err
	}

	switch intent.Intent {
	case IntentGitHubPR, IntentJiraTicket, IntentAssetRequest:
	default:
		intent.Intent = IntentUnknown
	}
	if intent.Parameters == nil {
		intent.Parameters = map[string]any{}
	}
	return &intent, nil
}

func decode(reply string, v any) error {
	if err := json.Unmarshal([]byte(StripCodeFence(reply)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	return nil
}

// StripCodeFence removes a surrounding ``` or ```json fence and whitespace.
func StripCodeFence(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
