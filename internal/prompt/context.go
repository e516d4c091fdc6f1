// Package prompt renders fetched repository data and audit reports as model
// context, builds the prompts sent to the model and parses its replies.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/festy23/evidence_bot/internal/audit/model"
)

var (
	auditSeparator   = "\n" + strings.Repeat("-", 70) + "\n"
	contextSeparator = strings.Repeat("-", 80) + "\n"
)

const shortSHALength = 7

// AuditContext renders the four audit reports as pipe-delimited text blocks.
func AuditContext(report *model.AuditReport) string {
	parts := make([]string, 0, 4)

	rows := make([]string, 0, len(report.MergedWithoutApproval))
	for _, r := range report.MergedWithoutApproval {
		rows = append(rows, fmt.Sprintf("%d | %s | %s | []", r.ID, r.Title, r.MergedBy))
	}
	parts = append(parts, section(
		fmt.Sprintf("PRs merged without approval: %d", len(report.MergedWithoutApproval)),
		"PR ID | Title | Merged By | Reviews",
		rows,
	))

	rows = make([]string, 0, len(report.ReviewerHistory))
	for _, r := range report.ReviewerHistory {
		rows = append(rows, fmt.Sprintf("%d | %s | %s | %s | %s", r.ID, r.Title, r.Reviewer, r.Decision, r.Date))
	}
	parts = append(parts, section(
		fmt.Sprintf("PRs reviewed by %s:", report.ReferenceReviewer),
		"PR ID | Title | Reviewer | Decision | Date",
		rows,
	))

	rows = make([]string, 0, len(report.StaleOpen))
	for _, r := range report.StaleOpen {
		rows = append(rows, fmt.Sprintf("%d | %s | %s | %s | %s",
			r.ID, r.Title, r.CreatedAt, pyBool(r.ReviewRequested), FormatHours(r.WaitingHours)))
	}
	parts = append(parts, section(
		"PRs waiting >24h for review:",
		"PR ID | Title | Created At | Review Requested | Waiting Hours",
		rows,
	))

	rows = make([]string, 0, len(report.RecentlyMerged))
	for _, r := range report.RecentlyMerged {
		rows = append(rows, fmt.Sprintf("%d | %s | %s | %s", r.ID, r.Title, r.MergedAt, pyList(r.Approvers)))
	}
	parts = append(parts, section(
		"PRs merged in last 7 days:",
		"PR ID | Title | Merged At | Approvers",
		rows,
	))

	return strings.Join(parts, auditSeparator)
}

// RepositoryContext renders repository metadata.
func RepositoryContext(repo *model.Repository) string {
	return fmt.Sprintf("Repository: %s (%s)\nDescription: %s\nStars: %d, Forks: %d\nDefault Branch: %s\nLicense: %s",
		repo.Name, repo.Owner, orNone(repo.Description), repo.Stars, repo.Forks, repo.DefaultBranch, orNone(repo.License))
}

// BranchContext renders one line per branch with its short head commit.
func BranchContext(branches []model.Branch) string {
	lines := make([]string, 0, len(branches))
	for _, b := range branches {
		lines = append(lines, fmt.Sprintf("%s (commit: %s)", b.Name, shortSHA(b.CommitSHA)))
	}
	return "Branches:\n" + strings.Join(lines, "\n")
}

// IssueContext renders one line per issue.
func IssueContext(issues []model.Issue) string {
	lines := make([]string, 0, len(issues))
	for _, i := range issues {
		assignee := "None"
		if i.Assignee != nil {
			assignee = *i.Assignee
		}
		lines = append(lines, fmt.Sprintf("%d | %s | %s | Assignee: %s | Labels: %s",
			i.Number, i.Title, i.State, assignee, pyList(i.Labels)))
	}
	return "Issues:\n" + strings.Join(lines, "\n")
}

// FullContext joins repository, branch, issue and audit context.
func FullContext(repo *model.Repository, branches []model.Branch, issues []model.Issue, auditContext string) string {
	parts := []string{
		RepositoryContext(repo),
		BranchContext(branches),
		IssueContext(issues),
		auditContext,
	}
	return "\n\n" + strings.Join(parts, contextSeparator)
}

// FormatHours renders hours with exactly one decimal.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 1, 64)
}

func section(title, header string, rows []string) string {
	return title + "\n" + header + "\n" + strings.Join(rows, "\n")
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// pyList renders values the way the context has always listed them: ['a', 'b'].
func pyList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
