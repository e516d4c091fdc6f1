package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/evidence_bot/internal/audit/model"
)

func strPtr(s string) *string {
	return &s
}

func TestCountStatuses(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 1, State: model.StateClosed, MergedAt: strPtr("2024-05-01T10:00:00Z")},
		{Number: 2, State: model.StateClosed},
		{Number: 3, State: model.StateOpen},
		{Number: 4, State: model.StateOpen},
		{Number: 5, State: model.StateClosed, MergedAt: strPtr("")},
	}

	counts := CountStatuses(prs)
	assert.Equal(t, StatusCounts{Merged: 1, Open: 2, Closed: 2}, counts)
	assert.Equal(t, 5, counts.Total())
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", truncateRunes("short", 40))
	assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
}

func TestRender(t *testing.T) {
	carol := "carol"
	audit := model.NewAuditReport("Alice", "2024-05-10T12:00:00Z")
	audit.StaleOpen = []model.StaleOpen{{ID: 7, Title: "Add cart", CreatedAt: "2024-05-08T12:00:00Z", WaitingHours: 48}}
	audit.RecentlyMerged = []model.RecentlyMerged{{ID: 1, Title: "Fix", MergedAt: "2024-05-09T12:00:00Z", Approvers: []string{"Alice"}}}

	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "query only",
			doc:  Document{Query: "q", Response: "r"},
		},
		{
			name: "full document",
			doc: Document{
				Query:    "Which PRs are waiting?",
				Response: "One pull request has waited more than a day for a reviewer. Très bien.",
				Repository: &model.Repository{
					Name: "juice-shop", Owner: "vulnerable-apps", Description: "demo", Stars: 10, Forks: 2,
				},
				PullRequests: []model.PullRequest{
					{Number: 1, State: model.StateClosed, MergedAt: strPtr("2024-05-09T12:00:00Z")},
					{Number: 7, State: model.StateOpen},
				},
				Issues: []model.Issue{
					{Number: 1, Title: "A very long issue title that certainly exceeds forty characters", State: "open", Assignee: &carol, Labels: []string{"bug"}},
					{Number: 2, Title: "Closed", State: "closed"},
					{Number: 3, Title: "c", State: "open"},
					{Number: 4, Title: "d", State: "open"},
					{Number: 5, Title: "e", State: "open"},
					{Number: 6, Title: "f", State: "open"},
				},
				Audit: audit,
			},
		},
		{
			name: "only closed pull requests",
			doc: Document{
				PullRequests: []model.PullRequest{{Number: 2, State: model.StateClosed}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.doc))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), "%%EOF")
		})
	}
}

func BenchmarkRender(b *testing.B) {
	issues := make([]model.Issue, 100)
	for i := range issues {
		issues[i] = model.Issue{Number: i, Title: "issue", State: "open"}
	}
	doc := Document{Query: "q", Response: "r", Issues: issues, Audit: model.NewAuditReport("Alice", "")}

	for b.Loop() {
		var buf bytes.Buffer
		if err := Render(&buf, doc); err != nil {
			b.Fatal(err)
		}
	}
}
