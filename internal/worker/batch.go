package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/stratusdial/convoiq/internal/model"
)

// InteractionAnalyzer is the interface the batch processor drives; the
// pipeline satisfies it
type InteractionAnalyzer interface {
	AnalyzeInteraction(ctx context.Context, in model.Interaction) (*model.Report, error)
}

// AnalyzeJob analyzes one interaction record
type AnalyzeJob struct {
	Interaction model.Interaction
	Analyzer    InteractionAnalyzer
}

// Execute runs the analysis for this job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeInteraction(ctx, j.Interaction)
	return &AnalyzeResult{
		Interaction: j.Interaction,
		Report:      report,
		Error:       err,
	}
}

// AnalyzeResult is the outcome of one analysis job
type AnalyzeResult struct {
	Interaction model.Interaction
	Report      *model.Report
	Error       error
}

// GetError returns the job's error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many interactions concurrently. Per-contact
// aggregation stays correct because the profile store serializes same-contact
// updates under its own locks.
type BatchProcessor struct {
	analyzer    InteractionAnalyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer InteractionAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes all interactions using the worker pool
func (b *BatchProcessor) Process(ctx context.Context, interactions []model.Interaction) []*AnalyzeResult {
	if len(interactions) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// The watcher must exit once the pool drains, or a long-lived caller
	// context would strand one goroutine per Process call
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, in := range interactions {
		pool.Submit(&AnalyzeJob{Interaction: in, Analyzer: b.analyzer})
	}

	results := pool.Wait()
	close(done)

	analyzed := make([]*AnalyzeResult, 0, len(results))
	for _, r := range results {
		if ar, ok := r.(*AnalyzeResult); ok {
			analyzed = append(analyzed, ar)
		}
	}
	return analyzed
}

// ReadInteractionsFile reads interaction records from a JSONL file: one JSON
// object per line, blank lines and #-comments skipped
func ReadInteractionsFile(path string) ([]model.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interactions file: %w", err)
	}
	defer f.Close()

	var interactions []model.Interaction
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var in model.Interaction
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		interactions = append(interactions, in)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read interactions file: %w", err)
	}

	return interactions, nil
}
