// Package aggregator derives the audit reports from a snapshot of pull requests.
package aggregator

import (
	"math"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/evidence_bot/internal/audit/model"
)

const (
	staleThreshold = 24 * time.Hour
	recentWindow   = 7 * 24 * time.Hour
)

// Options tunes how Aggregate runs. The zero value is sequential and fail-fast.
type Options struct {
	// Parallel computes the four reports concurrently.
	Parallel bool
	// SkipMalformed excludes PRs with bad timestamps from the stale and
	// recently-merged reports instead of failing the whole call.
	SkipMalformed bool
}

// Aggregator computes AuditReports. It holds no state between calls.
type Aggregator struct {
	opts   Options
	logger *zap.SugaredLogger
}

// New creates an aggregator.
func New(opts Options, logger *zap.SugaredLogger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Aggregator{opts: opts, logger: logger}
}

// Aggregate runs the default (sequential, fail-fast) aggregator.
func Aggregate(prs []model.PullRequest, referenceReviewer string, now time.Time) (*model.AuditReport, error) {
	return New(Options{}, nil).Aggregate(prs, referenceReviewer, now)
}

// timestamps holds the parsed times a PR needs; zero values mean "not needed"
// or, with skip set, "unusable".
type timestamps struct {
	createdAt time.Time
	mergedAt  time.Time
	skip      bool
}

// Aggregate builds the four reports for prs as of now. Inputs are not modified.
// A timestamp that fails to parse returns *model.MalformedRecordError for the
// first offending PR in input order, unless SkipMalformed is set.
func (a *Aggregator) Aggregate(
	prs []model.PullRequest,
	referenceReviewer string,
	now time.Time,
) (*model.AuditReport, error) {
	now = now.UTC()
	a.logger.Debugw("Aggregate called", "pull_requests", len(prs), "reference_reviewer", referenceReviewer)

	stamps, err := a.parseTimestamps(prs)
	if err != nil {
		return nil, err
	}

	report := model.NewAuditReport(referenceReviewer, model.FormatTimestamp(now))
	builders := []func(){
		func() { report.MergedWithoutApproval = mergedWithoutApproval(prs) },
		func() { report.ReviewerHistory = reviewerHistory(prs, referenceReviewer) },
		func() { report.StaleOpen = staleOpen(prs, stamps, now) },
		func() { report.RecentlyMerged = recentlyMerged(prs, stamps, now) },
	}

	if a.opts.Parallel {
		// Each builder writes a distinct field of report.
		var g errgroup.Group
		for _, build := range builders {
			g.Go(func() error {
				build()
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, build := range builders {
			build()
		}
	}

	a.logger.Debugw("Aggregate completed",
		"merged_without_approval", len(report.MergedWithoutApproval),
		"reviewer_history", len(report.ReviewerHistory),
		"stale_open", len(report.StaleOpen),
		"recently_merged", len(report.RecentlyMerged),
	)
	return report, nil
}

// parseTimestamps validates, in input order, every timestamp a report reads:
// created_at of PRs awaiting a reviewer and merged_at of merged PRs.
func (a *Aggregator) parseTimestamps(prs []model.PullRequest) ([]timestamps, error) {
	stamps := make([]timestamps, len(prs))
	for i, pr := range prs {
		if pr.AwaitingReviewer() {
			t, err := model.ParseTimestamp(pr.CreatedAt)
			if err != nil {
				if skipErr := a.malformed(pr, model.FieldCreatedAt, pr.CreatedAt, err); skipErr != nil {
					return nil, skipErr
				}
				stamps[i].skip = true
				continue
			}
			stamps[i].createdAt = t
		}
		if pr.IsMerged() {
			t, err := model.ParseTimestamp(*pr.MergedAt)
			if err != nil {
				if skipErr := a.malformed(pr, model.FieldMergedAt, *pr.MergedAt, err); skipErr != nil {
					return nil, skipErr
				}
				stamps[i].skip = true
				continue
			}
			stamps[i].mergedAt = t
		}
	}
	return stamps, nil
}

// malformed returns the error to abort with, or nil after logging when skipping.
func (a *Aggregator) malformed(pr model.PullRequest, field, value string, cause error) error {
	err := &model.MalformedRecordError{PRNumber: pr.Number, Field: field, Value: value, Err: cause}
	if !a.opts.SkipMalformed {
		return err
	}
	a.logger.Warnw("skipping malformed pull request", "number", pr.Number, "field", field, "value", value)
	return nil
}

func mergedWithoutApproval(prs []model.PullRequest) []model.MergedWithoutApproval {
	rows := make([]model.MergedWithoutApproval, 0)
	for _, pr := range prs {
		if !pr.IsMerged() || pr.HasApproval() {
			continue
		}
		rows = append(rows, model.MergedWithoutApproval{
			ID:       pr.Number,
			Title:    pr.Title,
			MergedBy: pr.MergedByLogin(),
		})
	}
	return rows
}

func reviewerHistory(prs []model.PullRequest, referenceReviewer string) []model.ReviewerActivity {
	rows := make([]model.ReviewerActivity, 0)
	for _, pr := range prs {
		for _, review := range pr.Reviews {
			if !strings.EqualFold(review.User.Login, referenceReviewer) {
				continue
			}
			rows = append(rows, model.ReviewerActivity{
				ID:       pr.Number,
				Title:    pr.Title,
				Reviewer: review.User.Login,
				Decision: review.State,
				Date:     review.SubmittedAt,
			})
		}
	}
	return rows
}

func staleOpen(prs []model.PullRequest, stamps []timestamps, now time.Time) []model.StaleOpen {
	rows := make([]model.StaleOpen, 0)
	for i, pr := range prs {
		if !pr.AwaitingReviewer() || stamps[i].skip {
			continue
		}
		waiting := now.Sub(stamps[i].createdAt)
		if waiting <= staleThreshold {
			continue
		}
		rows = append(rows, model.StaleOpen{
			ID:              pr.Number,
			Title:           pr.Title,
			CreatedAt:       pr.CreatedAt,
			ReviewRequested: false,
			WaitingHours:    roundTenth(waiting.Seconds() / 3600),
		})
	}
	return rows
}

func recentlyMerged(prs []model.PullRequest, stamps []timestamps, now time.Time) []model.RecentlyMerged {
	weekAgo := now.Add(-recentWindow)
	rows := make([]model.RecentlyMerged, 0)
	for i, pr := range prs {
		if !pr.IsMerged() || stamps[i].skip || !stamps[i].mergedAt.After(weekAgo) {
			continue
		}
		rows = append(rows, model.RecentlyMerged{
			ID:        pr.Number,
			Title:     pr.Title,
			MergedAt:  *pr.MergedAt,
			Approvers: pr.Approvers(),
		})
	}
	return rows
}

// roundTenth rounds to one decimal place, halves away from zero.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
