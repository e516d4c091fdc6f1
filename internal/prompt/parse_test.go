package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected string
	}{
		{name: "plain", reply: `{"a":1}`, expected: `{"a":1}`},
		{name: "json fence", reply: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "bare fence", reply: "```\n{\"a\":1}\n```\n", expected: `{"a":1}`},
		{name: "surrounding whitespace", reply: "  \n{\"a\":1}\n  ", expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.reply))
		})
	}
}

func TestParseAnswer(t *testing.T) {
	answer, err := ParseAnswer("```json\n{\"description\": \"Two PRs are stale.\", \"csv\": [{\"PR ID\": 7}]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Two PRs are stale.", answer.Description)
	assert.JSONEq(t, `[{"PR ID": 7}]`, string(answer.CSV))

	_, err = ParseAnswer("The answer is 42.")
	require.ErrorIs(t, err, ErrNotJSON)
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected string
	}{
		{name: "github pr", reply: `{"intent": "github_pr", "parameters": {"pr_number": 42}}`, expected: IntentGitHubPR},
		{name: "jira", reply: "```json\n{\"intent\": \"jira_ticket\"}\n```", expected: IntentJiraTicket},
		{name: "asset", reply: `{"intent": "asset_request", "parameters": {}}`, expected: IntentAssetRequest},
		{name: "unrecognised", reply: `{"intent": "weather"}`, expected: IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := ParseIntent(tt.reply)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, intent.Intent)
			assert.NotNil(t, intent.Parameters)
		})
	}

	_, err := ParseIntent("not json")
	require.ErrorIs(t, err, ErrNotJSON)
}

func TestAuditPrompt(t *testing.T) {
	p := AuditPrompt("Which PRs are stale?", "CONTEXT", "")
	assert.Contains(t, p, "Query: Which PRs are stale?")
	assert.Contains(t, p, "PR DATA:\nCONTEXT")
	assert.Contains(t, p, `"description"`)
	assert.Contains(t, p, `"csv"`)
	assert.NotContains(t, p, "CSV DATA:")

	withCSV := AuditPrompt("q", "CONTEXT", "CSV DATA:\na,b\n")
	assert.Contains(t, withCSV, "CSV DATA:\na,b\n")
}

func TestIntentPrompt(t *testing.T) {
	p := IntentPrompt("Show PR 42")
	assert.Contains(t, p, "Query: Show PR 42")
	for _, intent := range []string{IntentGitHubPR, IntentJiraTicket, IntentAssetRequest, IntentUnknown} {
		assert.True(t, strings.Contains(p, "- "+intent), intent)
	}
}
