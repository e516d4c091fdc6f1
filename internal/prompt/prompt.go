package prompt

import (
	"fmt"
	"strings"
)

// Intents recognised by IntentPrompt.
const (
	IntentGitHubPR     = "github_pr"
	IntentJiraTicket   = "jira_ticket"
	IntentAssetRequest = "asset_request"
	IntentUnknown      = "unknown"
)

// AuditPrompt asks the model to answer query from prData (and optional csvData)
// as a JSON object with "description" and "csv" keys.
func AuditPrompt(query, prData, csvData string) string {
	var b strings.Builder
	b.WriteString("You are an AI audit assistant. Please answer the following query with a JSON object with two keys:\n\n")
	b.WriteString("1. \"description\": a concise, human-readable summary of the audit results.\n")
	b.WriteString("2. \"csv\": a list of JSON objects where PR ID, Title etc. are mapped out as key value pairs.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Use only the provided PR DATA and CSV DATA to answer the question.\n")
	b.WriteString("- If some data is not relevant, silently ignore it.\n\n")
	fmt.Fprintf(&b, "Query: %s\n\n", query)
	fmt.Fprintf(&b, "PR DATA:\n%s\n\n", prData)
	if csvData != "" {
		b.WriteString(csvData)
		b.WriteString("\n\n")
	}
	b.WriteString("The JSON output should look like this exactly (without markdown code blocks):\n\n")
	b.WriteString("{\n\"description\": \"...summary text...\",\n\"csv\": [{\"PR ID\": \"...\", \"Title\": \"...\"}]\n}\n")
	return b.String()
}

// IntentPrompt asks the model to classify query and extract its parameters.
func IntentPrompt(query string) string {
	return fmt.Sprintf(`You are an intent extractor for an Evidence-on-Demand bot.
Given a query, classify it into one of these intents:
- %s
- %s
- %s
- %s

Extract parameters if available (e.g., PR number, ticket ID, asset type).

Query: %s
Respond in JSON with fields: intent, parameters.
`, IntentGitHubPR, IntentJiraTicket, IntentAssetRequest, IntentUnknown, query)
}
