package githubapi

import (
	"github.com/google/go-github/v66/github"

	"github.com/festy23/evidence_bot/internal/audit/model"
)

func formatTimestamp(ts *github.Timestamp) string {
	if ts == nil {
		return ""
	}
	return model.FormatTimestamp(ts.Time)
}

func convertPullRequest(pr *github.PullRequest) model.PullRequest {
	out := model.PullRequest{
		Number:             pr.GetNumber(),
		Title:              pr.GetTitle(),
		State:              pr.GetState(),
		CreatedAt:          formatTimestamp(pr.CreatedAt),
		RequestedReviewers: make([]model.User, 0, len(pr.RequestedReviewers)),
		Reviews:            []model.Review{},
	}
	if pr.MergedAt != nil {
		mergedAt := formatTimestamp(pr.MergedAt)
		out.MergedAt = &mergedAt
	}
	if pr.MergedBy != nil {
		out.MergedBy = &model.User{Login: pr.MergedBy.GetLogin()}
	}
	for _, u := range pr.RequestedReviewers {
		out.RequestedReviewers = append(out.RequestedReviewers, model.User{Login: u.GetLogin()})
	}
	return out
}

func convertReview(r *github.PullRequestReview) model.Review {
	return model.Review{
		User:        model.User{Login: r.GetUser().GetLogin()},
		State:       r.GetState(),
		SubmittedAt: formatTimestamp(r.SubmittedAt),
	}
}

func convertIssue(issue *github.Issue) model.Issue {
	out := model.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Labels:    make([]string, 0, len(issue.Labels)),
		CreatedAt: formatTimestamp(issue.CreatedAt),
	}
	if issue.Assignee != nil {
		login := issue.Assignee.GetLogin()
		out.Assignee = &login
	}
	for _, label := range issue.Labels {
		out.Labels = append(out.Labels, label.GetName())
	}
	return out
}
