package application

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"factskill/internal/domain/entities"
	"factskill/internal/ports/output"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// inlineRunner runs tasks synchronously so tests observe their effects.
type inlineRunner struct {
	err error
}

func (r inlineRunner) Submit(_ context.Context, task func()) error {
	if r.err != nil {
		return r.err
	}
	task()
	return nil
}

type fakeScorer struct {
	mu       sync.Mutex
	level    int64
	err      error
	requests []output.ScoreRequest
}

func (f *fakeScorer) Score(_ context.Context, req output.ScoreRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.level, f.err
}

func (f *fakeScorer) nodes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodes := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		nodes = append(nodes, r.NodeNumber)
	}
	return nodes
}

type memoryRepo struct {
	mu           sync.Mutex
	interactions []entities.Interaction
}

func (m *memoryRepo) Create(_ context.Context, interaction *entities.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, *interaction)
	return nil
}

func (m *memoryRepo) all() []entities.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entities.Interaction(nil), m.interactions...)
}
