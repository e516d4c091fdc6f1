package model

// MergedWithoutApproval is a merged PR that has no APPROVED review.
type MergedWithoutApproval struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	MergedBy string `json:"merged_by"`
}

// ReviewerActivity is one review left by the reference reviewer.
type ReviewerActivity struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Reviewer string `json:"reviewer"`
	Decision string `json:"decision"`
	Date     string `json:"date"`
}

// StaleOpen is an open PR that has waited more than a day with no reviewer requested.
type StaleOpen struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	CreatedAt       string  `json:"created_at"`
	ReviewRequested bool    `json:"review_requested"`
	WaitingHours    float64 `json:"waiting_hours"`
}

// RecentlyMerged is a PR merged within the last week with its approvers.
type RecentlyMerged struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	MergedAt  string   `json:"merged_at"`
	Approvers []string `json:"approvers"`
}

// AuditReport bundles the four independently derived reports.
type AuditReport struct {
	ReferenceReviewer     string                  `json:"reference_reviewer"`
	GeneratedAt           string                  `json:"generated_at"`
	MergedWithoutApproval []MergedWithoutApproval `json:"merged_without_approval"`
	ReviewerHistory       []ReviewerActivity      `json:"reviewer_history"`
	StaleOpen             []StaleOpen             `json:"stale_open"`
	RecentlyMerged        []RecentlyMerged        `json:"recently_merged"`
}

// NewAuditReport returns a report with empty, non-nil sections.
func NewAuditReport(referenceReviewer, generatedAt string) *AuditReport {
	return &AuditReport{
		ReferenceReviewer:     referenceReviewer,
		GeneratedAt:           generatedAt,
		MergedWithoutApproval: []MergedWithoutApproval{},
		ReviewerHistory:       []ReviewerActivity{},
		StaleOpen:             []StaleOpen{},
		RecentlyMerged:        []RecentlyMerged{},
	}
}
