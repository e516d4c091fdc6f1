// Package service provides business logic layer for the query module.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/evidence_bot/internal/audit/aggregator"
	auditModel "github.com/festy23/evidence_bot/internal/audit/model"
	"github.com/festy23/evidence_bot/internal/config"
	"github.com/festy23/evidence_bot/internal/githubapi"
	"github.com/festy23/evidence_bot/internal/llm"
	"github.com/festy23/evidence_bot/internal/prompt"
	queryModel "github.com/festy23/evidence_bot/internal/query/model"
	"github.com/festy23/evidence_bot/internal/report"
)

// Service defines the interface for query business logic operations.
type Service interface {
	// Query answers a natural-language question from repository data and the audit reports.
	Query(ctx context.Context, req *queryModel.QueryRequest) (*queryModel.QueryResponse, error)

	// Audit returns the four audit reports for the configured repository.
	Audit(ctx context.Context) (*auditModel.AuditReport, error)

	// Report answers the query and renders the answer with repository data as a PDF.
	Report(ctx context.Context, req *queryModel.QueryRequest) ([]byte, error)

	// ExtractIntent classifies the query.
	ExtractIntent(ctx context.Context, req *queryModel.QueryRequest) (*queryModel.IntentResponse, error)
}

// Option configures the service.
type Option func(*service)

// WithClock replaces time.Now as the audit reference time.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	fetcher    githubapi.Fetcher
	completer  llm.Completer
	aggregator *aggregator.Aggregator
	cfg        config.AuditConfig
	now        func() time.Time
	logger     *zap.SugaredLogger
}

// New creates a new query service instance.
func New(
	fetcher githubapi.Fetcher,
	completer llm.Completer,
	cfg config.AuditConfig,
	logger *zap.SugaredLogger,
	opts ...Option,
) Service {
	s := &service{
		fetcher:   fetcher,
		completer: completer,
		aggregator: aggregator.New(aggregator.Options{
			Parallel:      cfg.Parallel,
			SkipMalformed: cfg.SkipMalformed,
		}, logger),
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is everything fetched from the hosting API for one request.
type snapshot struct {
	repository   *auditModel.Repository
	branches     []auditModel.Branch
	issues       []auditModel.Issue
	pullRequests []auditModel.PullRequest
}

type answered struct {
	response *queryModel.QueryResponse
	snapshot *snapshot
	audit    *auditModel.AuditReport
}

// Query answers a natural-language question from repository data and the audit reports.
func (s *service) Query(ctx context.Context, req *queryModel.QueryRequest) (*queryModel.QueryResponse, error) {
	s.logger.Debugw("Query called", "query", req.Query)

	result, err := s.answer(ctx, req)
	if err != nil {
		s.logger.Errorw("Query failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Query completed", "structured", result.response.Answer != nil)
	return result.response, nil
}

// Audit returns the four audit reports for the configured repository.
func (s *service) Audit(ctx context.Context) (*auditModel.AuditReport, error) {
	s.logger.Debugw("Audit called")

	prs, err := s.fetcher.FetchPullRequests(ctx)
	if err != nil {
		s.logger.Errorw("Audit failed", "error", err)
		return nil, fmt.Errorf("%w: %w", queryModel.ErrUpstream, err)
	}

	audit, err := s.aggregator.Aggregate(prs, s.cfg.ReferenceReviewer, s.now())
	if err != nil {
		s.logger.Errorw("Audit failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Audit completed",
		"pull_requests", len(prs),
		"merged_without_approval", len(audit.MergedWithoutApproval),
		"stale_open", len(audit.StaleOpen),
	)
	return audit, nil
}

// Report answers the query and renders the answer with repository data as a PDF.
func (s *service) Report(ctx context.Context, req *queryModel.QueryRequest) ([]byte, error) {
	s.logger.Debugw("Report called", "query", req.Query)

	result, err := s.answer(ctx, req)
	if err != nil {
		s.logger.Errorw("Report failed", "error", err)
		return nil, err
	}

	var buf bytes.Buffer
	err = report.Render(&buf, report.Document{
		Query:        result.response.Query,
		Response:     reportText(result.response),
		Repository:   result.snapshot.repository,
		PullRequests: result.snapshot.pullRequests,
		Issues:       result.snapshot.issues,
		Audit:        result.audit,
	})
	if err != nil {
		s.logger.Errorw("Report failed", "error", err)
		return nil, err
	}

	s.logger.Infow("Report completed", "bytes", buf.Len())
	return buf.Bytes(), nil
}

// ExtractIntent classifies the query. A reply that is not JSON yields the unknown intent.
func (s *service) ExtractIntent(ctx context.Context, req *queryModel.QueryRequest) (*queryModel.IntentResponse, error) {
	s.logger.Debugw("ExtractIntent called", "query", req.Query)

	query, err := validateQuery(req)
	if err != nil {
		return nil, err
	}

	reply, err := s.complete(ctx, prompt.IntentPrompt(query))
	if err != nil {
		s.logger.Errorw("ExtractIntent failed", "error", err)
		return nil, err
	}

	resp := &queryModel.IntentResponse{Query: query}
	intent, err := prompt.ParseIntent(reply)
	if err != nil {
		s.logger.Warnw("intent reply is not JSON", "error", err)
		resp.Intent = &prompt.Intent{Intent: prompt.IntentUnknown, Parameters: map[string]any{}}
		resp.Raw = reply
	} else {
		resp.Intent = intent
	}

	s.logger.Infow("ExtractIntent completed", "intent", resp.Intent.Intent)
	return resp, nil
}

func (s *service) answer(ctx context.Context, req *queryModel.QueryRequest) (*answered, error) {
	query, err := validateQuery(req)
	if err != nil {
		return nil, err
	}

	snap, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	audit, err := s.aggregator.Aggregate(snap.pullRequests, s.cfg.ReferenceReviewer, s.now())
	if err != nil {
		return nil, err
	}

	csvContext, err := prompt.CSVContext(s.cfg.CSVPath)
	if err != nil {
		return nil, err
	}

	prData := prompt.FullContext(snap.repository, snap.branches, snap.issues, prompt.AuditContext(audit))
	reply, err := s.complete(ctx, prompt.AuditPrompt(query, prData, csvContext))
	if err != nil {
		return nil, err
	}

	resp := &queryModel.QueryResponse{Query: query, Response: reply}
	if answer, err := prompt.ParseAnswer(reply); err == nil {
		resp.Answer = answer
	} else {
		s.logger.Debugw("model reply is not structured", "error", err)
	}

	return &answered{response: resp, snapshot: snap, audit: audit}, nil
}

// fetch reads repository metadata, branches, issues and pull requests concurrently.
func (s *service) fetch(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		repo, err := s.fetcher.FetchRepository(gctx)
		snap.repository = repo
		return err
	})
	g.Go(func() error {
		branches, err := s.fetcher.FetchBranches(gctx)
		snap.branches = branches
		return err
	})
	g.Go(func() error {
		issues, err := s.fetcher.FetchIssues(gctx)
		snap.issues = issues
		return err
	})
	g.Go(func() error {
		prs, err := s.fetcher.FetchPullRequests(gctx)
		snap.pullRequests = prs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", queryModel.ErrUpstream, err)
	}

	s.logger.Debugw("repository data fetched",
		"branches", len(snap.branches),
		"issues", len(snap.issues),
		"pull_requests", len(snap.pullRequests),
	)
	return &snap, nil
}

func (s *service) complete(ctx context.Context, p string) (string, error) {
	reply, err := s.completer.Complete(ctx, p)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", queryModel.ErrCompletion, err)
	}
	return reply, nil
}

func validateQuery(req *queryModel.QueryRequest) (string, error) {
	if req == nil {
		return "", queryModel.ErrEmptyQuery
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return "", queryModel.ErrEmptyQuery
	}
	return query, nil
}

// reportText prefers the parsed description over the raw reply.
func reportText(resp *queryModel.QueryResponse) string {
	if resp.Answer != nil && resp.Answer.Description != "" {
		return resp.Answer.Description
	}
	return resp.Response
}
