// internal/service/checker.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/report"
	"github.com/dangerclosesec/clausecheck/internal/repository"
	"golang.org/x/sync/errgroup"
)

// CheckerService checks every program of a source repository
type CheckerService struct {
	repo     repository.SourceRepository
	grammar  *parser.Grammar
	recovery bool
	workers  int
	logger   *slog.Logger
}

// NewCheckerService creates a new checker. A nil grammar selects the
// standard operator table.
func NewCheckerService(
	repo repository.SourceRepository,
	grammar *parser.Grammar,
	logger *slog.Logger,
) *CheckerService {
	if grammar == nil {
		grammar = parser.StandardGrammar()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckerService{
		repo:    repo,
		grammar: grammar,
		workers: 1,
		logger:  logger,
	}
}

// SetWorkers sets how many files are checked concurrently
func (s *CheckerService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// SetRecover makes the parser continue after a failed clause
func (s *CheckerService) SetRecover(enabled bool) {
	s.recovery = enabled
}

// CheckAll checks every listed file. Results keep the listing order no
// matter which file finishes first.
func (s *CheckerService) CheckAll(ctx context.Context) (*report.Report, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	rep := report.New(s.grammar.Name)
	s.logger.Info("starting check", "run_id", rep.RunID, "files", len(names), "workers", s.workers)
	start := time.Now()

	results := make([]report.FileResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range names {
		g.Go(func() error {
			res, err := s.CheckFile(gctx, name)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep.Results = results
	s.logger.Info("completed check",
		"run_id", rep.RunID,
		"files", len(results),
		"failed", rep.Failed(),
		"duration", time.Since(start))

	return rep, nil
}

// CheckFile reads and checks a single file of the repository
func (s *CheckerService) CheckFile(ctx context.Context, name string) (report.FileResult, error) {
	content, err := s.repo.Read(ctx, name)
	if err != nil {
		return report.FileResult{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return s.CheckSource(name, content)
}

// CheckSource checks program text that did not come from the repository
func (s *CheckerService) CheckSource(name string, content []byte) (report.FileResult, error) {
	res := report.FileResult{Name: name}

	prog, err := parser.ParseString(string(content),
		parser.WithGrammar(s.grammar),
		parser.WithRecovery(s.recovery))
	if err != nil {
		diags := parser.AsDiagnostics(err)
		if diags == nil {
			return res, fmt.Errorf("checking %s: %w", name, err)
		}
		res.Diagnostics = diags
		s.logger.Warn("file contains syntax errors", "file", name, "diagnostics", len(diags), "error", diags[0])
		return res, nil
	}

	res.Clauses = len(prog.Clauses)
	res.Predicates = prog.Predicates()
	s.logger.Debug("file is syntactically correct", "file", name, "clauses", res.Clauses)
	return res, nil
}
