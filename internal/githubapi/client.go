// Package githubapi fetches pull requests, reviews, issues, branches and
// repository metadata from the GitHub REST API and converts them into audit records.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/evidence_bot/internal/audit/model"
	"github.com/festy23/evidence_bot/internal/config"
)

// ErrRepositoryNotFound is returned when owner/repo does not resolve.
var ErrRepositoryNotFound = errors.New("repository not found")

// Fetcher is the read-only view of a hosting repository used by the query service.
type Fetcher interface {
	// FetchPullRequests returns all pull requests with reviews populated for closed ones.
	FetchPullRequests(ctx context.Context) ([]model.PullRequest, error)
	// FetchIssues returns issues, pull requests excluded.
	FetchIssues(ctx context.Context) ([]model.Issue, error)
	// FetchBranches returns branches with their head commit.
	FetchBranches(ctx context.Context) ([]model.Branch, error)
	// FetchRepository returns repository metadata.
	FetchRepository(ctx context.Context) (*model.Repository, error)
	// Ping checks that the repository is reachable with the configured credentials.
	Ping(ctx context.Context) error
}

// Client implements Fetcher on top of go-github.
type Client struct {
	gh     *github.Client
	cfg    config.GitHubConfig
	logger *zap.SugaredLogger
}

var _ Fetcher = (*Client)(nil)

// New creates a client for cfg.Owner/cfg.Repo.
func New(cfg config.GitHubConfig, logger *zap.SugaredLogger) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse GitHub API URL: %w", err)
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	gh := github.NewClient(&http.Client{Timeout: cfg.Timeout})
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	gh.BaseURL = baseURL

	return &Client{gh: gh, cfg: cfg, logger: logger}, nil
}

// FetchPullRequests lists pull requests in every state. Reviews are fetched
// only for closed pull requests; every other pull request gets an empty list.
func (c *Client) FetchPullRequests(ctx context.Context) ([]model.PullRequest, error) {
	c.logger.Debugw("FetchPullRequests called", "owner", c.cfg.Owner, "repo", c.cfg.Repo)

	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
	}
	var raw []*github.PullRequest
	for page := 0; page < c.cfg.MaxPages; page++ {
		prs, resp, err := c.gh.PullRequests.List(ctx, c.cfg.Owner, c.cfg.Repo, opts)
		if err != nil {
			return nil, c.wrap("fetch pull requests", err)
		}
		raw = append(raw, prs...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	result := make([]model.PullRequest, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.ReviewConcurrency)
	for i, pr := range raw {
		result[i] = convertPullRequest(pr)
		if result[i].State != model.StateClosed {
			continue
		}
		g.Go(func() error {
			reviews, err := c.fetchReviews(gctx, pr.GetNumber())
			if err != nil {
				return err
			}
			result[i].Reviews = reviews
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Infow("FetchPullRequests completed", "count", len(result))
	return result, nil
}

func (c *Client) fetchReviews(ctx context.Context, number int) ([]model.Review, error) {
	opts := &github.ListOptions{PerPage: c.cfg.PerPage}
	reviews := make([]model.Review, 0)
	for page := 0; page < c.cfg.MaxPages; page++ {
		batch, resp, err := c.gh.PullRequests.ListReviews(ctx, c.cfg.Owner, c.cfg.Repo, number, opts)
		if err != nil {
			return nil, c.wrap(fmt.Sprintf("fetch reviews of #%d", number), err)
		}
		for _, r := range batch {
			reviews = append(reviews, convertReview(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return reviews, nil
}

// FetchIssues lists issues in every state; the issues endpoint also returns
// pull requests, which are dropped.
func (c *Client) FetchIssues(ctx context.Context) ([]model.Issue, error) {
	c.logger.Debugw("FetchIssues called", "owner", c.cfg.Owner, "repo", c.cfg.Repo)

	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: c.cfg.PerPage},
	}
	issues := make([]model.Issue, 0)
	for page := 0; page < c.cfg.MaxPages; page++ {
		batch, resp, err := c.gh.Issues.ListByRepo(ctx, c.cfg.Owner, c.cfg.Repo, opts)
		if err != nil {
			return nil, c.wrap("fetch issues", err)
		}
		for _, issue := range batch {
			if issue.IsPullRequest() {
				continue
			}
			issues = append(issues, convertIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Infow("FetchIssues completed", "count", len(issues))
	return issues, nil
}

// FetchBranches lists branches.
func (c *Client) FetchBranches(ctx context.Context) ([]model.Branch, error) {
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: c.cfg.PerPage}}
	branches := make([]model.Branch, 0)
	for page := 0; page < c.cfg.MaxPages; page++ {
		batch, resp, err := c.gh.Repositories.ListBranches(ctx, c.cfg.Owner, c.cfg.Repo, opts)
		if err != nil {
			return nil, c.wrap("fetch branches", err)
		}
		for _, b := range batch {
			branches = append(branches, model.Branch{
				Name:      b.GetName(),
				Protected: b.GetProtected(),
				CommitSHA: b.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debugw("FetchBranches completed", "count", len(branches))
	return branches, nil
}

// FetchRepository returns repository metadata.
func (c *Client) FetchRepository(ctx context.Context) (*model.Repository, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, c.cfg.Owner, c.cfg.Repo)
	if err != nil {
		return nil, c.wrap("fetch repository", err)
	}
	return &model.Repository{
		Name:          repo.GetName(),
		Owner:         repo.GetOwner().GetLogin(),
		Description:   repo.GetDescription(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		DefaultBranch: repo.GetDefaultBranch(),
		License:       repo.GetLicense().GetSPDXID(),
	}, nil
}

// Ping fetches repository metadata and discards it.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.FetchRepository(ctx)
	return err
}

// wrap annotates err with the operation and maps 404 to ErrRepositoryNotFound.
func (c *Client) wrap(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s/%s: %w", op, c.cfg.Owner, c.cfg.Repo, ErrRepositoryNotFound)
	}
	return fmt.Errorf("%s %s/%s: %w", op, c.cfg.Owner, c.cfg.Repo, err)
}
