package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/domain"
	"github.com/dangerclosesec/clausecheck/internal/mocks"
	"github.com/dangerclosesec/clausecheck/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCheckAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sources := map[string]string{
		"1.txt": "likes(mary, wine).\nlikes(john, X) :- likes(X, wine).\n",
		"2.txt": "location(object(candle,red,small,1), kitchen\n",
		"3.txt": "?- likes(mary, What).\n",
	}

	t.Run("results follow listing order", func(t *testing.T) {
		repo := mocks.NewMockSourceRepository(ctrl)
		repo.EXPECT().
			List(gomock.Any()).
			Return([]string{"1.txt", "2.txt", "3.txt"}, nil)
		repo.EXPECT().
			Read(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, name string) ([]byte, error) {
				return []byte(sources[name]), nil
			}).
			Times(3)

		checker := service.NewCheckerService(repo, nil, discardLogger())
		checker.SetWorkers(3)

		rep, err := checker.CheckAll(context.Background())
		require.NoError(t, err)
		require.Len(t, rep.Results, 3)

		assert.Equal(t, "standard", rep.Grammar)
		assert.Equal(t, []string{"1.txt", "2.txt", "3.txt"},
			[]string{rep.Results[0].Name, rep.Results[1].Name, rep.Results[2].Name})

		assert.True(t, rep.Results[0].OK())
		assert.Equal(t, 2, rep.Results[0].Clauses)
		assert.Equal(t, []string{"likes/2"}, rep.Results[0].Predicates)

		assert.False(t, rep.Results[1].OK())
		require.Len(t, rep.Results[1].Diagnostics, 1)
		assert.Equal(t, "')'", rep.Results[1].Diagnostics[0].Expected)

		assert.True(t, rep.Results[2].OK())
		assert.Equal(t, 1, rep.Failed())
	})

	t.Run("listing failure", func(t *testing.T) {
		repo := mocks.NewMockSourceRepository(ctrl)
		repo.EXPECT().
			List(gomock.Any()).
			Return(nil, domain.ErrNoInputFiles)

		_, err := service.NewCheckerService(repo, nil, discardLogger()).CheckAll(context.Background())
		assert.True(t, errors.Is(err, domain.ErrNoInputFiles))
	})

	t.Run("read failure aborts the run", func(t *testing.T) {
		repo := mocks.NewMockSourceRepository(ctrl)
		repo.EXPECT().
			List(gomock.Any()).
			Return([]string{"1.txt"}, nil)
		repo.EXPECT().
			Read(gomock.Any(), "1.txt").
			Return(nil, domain.ErrNotFound)

		rep, err := service.NewCheckerService(repo, nil, discardLogger()).CheckAll(context.Background())
		assert.Nil(t, rep)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Contains(t, err.Error(), "1.txt")
	})
}

func TestCheckSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockSourceRepository(ctrl)

	t.Run("grammar is applied", func(t *testing.T) {
		checker := service.NewCheckerService(repo, parser.FlatGrammar(), discardLogger())

		// 1 + 2 * 3 groups left to right under the flat table, so the
		// program is still valid; only the grouping differs
		res, err := checker.CheckSource("inline", []byte("x(Y) :- Y is 1 + 2 * 3."))
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, 1, res.Clauses)
	})

	t.Run("recovery collects every failed clause", func(t *testing.T) {
		checker := service.NewCheckerService(repo, nil, discardLogger())
		checker.SetRecover(true)

		res, err := checker.CheckSource("inline", []byte("a(. b. c(.\nd."))
		require.NoError(t, err)
		assert.Len(t, res.Diagnostics, 2)
	})

	t.Run("stops at first failure by default", func(t *testing.T) {
		checker := service.NewCheckerService(repo, nil, discardLogger())

		res, err := checker.CheckSource("inline", []byte("a(. b. c(.\nd."))
		require.NoError(t, err)
		assert.Len(t, res.Diagnostics, 1)
		assert.Zero(t, res.Clauses)
	})

	t.Run("lexical errors are diagnostics", func(t *testing.T) {
		checker := service.NewCheckerService(repo, nil, discardLogger())

		res, err := checker.CheckSource("inline", []byte("cut :- !."))
		require.NoError(t, err)
		require.Len(t, res.Diagnostics, 1)
		assert.True(t, errors.Is(res.Diagnostics[0], parser.ErrLexical))
	})
}
