// Package model defines the records consumed and produced by the audit aggregator.
package model

// Pull request states as reported by the hosting API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// ReviewStateApproved is the only review state the audit gives weight to.
const ReviewStateApproved = "APPROVED"

// TimestampLayout is the exact upstream timestamp format (UTC, second precision).
const TimestampLayout = "2006-01-02T15:04:05Z"

// User is a hosting account reference.
type User struct {
	Login string `json:"login"`
}

// Review is a single review submitted on a pull request.
type Review struct {
	User        User   `json:"user"`
	State       string `json:"state"`
	SubmittedAt string `json:"submitted_at"`
}

// PullRequest is a pull request enriched with its review list.
// Reviews is only populated for closed pull requests.
type PullRequest struct {
	Number             int      `json:"number"`
	Title              string   `json:"title"`
	State              string   `json:"state"`
	CreatedAt          string   `json:"created_at"`
	MergedAt           *string  `json:"merged_at"`
	MergedBy           *User    `json:"merged_by"`
	RequestedReviewers []User   `json:"requested_reviewers"`
	Reviews            []Review `json:"reviews"`
}

// IsMerged reports whether merged_at is set.
func (pr PullRequest) IsMerged() bool {
	return pr.MergedAt != nil && *pr.MergedAt != ""
}

// MergedByLogin returns the merger's login or "Unknown".
func (pr PullRequest) MergedByLogin() string {
	if pr.MergedBy == nil || pr.MergedBy.Login == "" {
		return "Unknown"
	}
	return pr.MergedBy.Login
}

// HasApproval reports whether any review approved the pull request.
func (pr PullRequest) HasApproval() bool {
	for _, review := range pr.Reviews {
		if review.State == ReviewStateApproved {
			return true
		}
	}
	return false
}

// Approvers returns approving logins in review order, duplicates kept.
func (pr PullRequest) Approvers() []string {
	approvers := make([]string, 0)
	for _, review := range pr.Reviews {
		if review.State == ReviewStateApproved {
			approvers = append(approvers, review.User.Login)
		}
	}
	return approvers
}

// AwaitingReviewer reports whether the pull request is open with nobody requested.
func (pr PullRequest) AwaitingReviewer() bool {
	return pr.State == StateOpen && len(pr.RequestedReviewers) == 0
}
