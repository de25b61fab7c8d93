package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/personarium/personarium/internal/model"
)

// Analyzer is the slice of the persona pipeline a batch job needs.
type Analyzer interface {
	Analyze(ctx context.Context, account string) (*model.PersonaRecord, error)
}

// AnalyzeJob runs a single account through the analyzer.
type AnalyzeJob struct {
	Account  string
	Analyzer Analyzer
}

// Execute implements Job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	rec, err := j.Analyzer.Analyze(ctx, j.Account)
	if err != nil {
		return &AnalyzeResult{Account: j.Account, Error: err}
	}
	return &AnalyzeResult{Account: j.Account, Record: rec}
}

// AnalyzeResult pairs an account with its finished record or its error.
type AnalyzeResult struct {
	Account string
	Record  *model.PersonaRecord
	Error   error
}

// GetError implements Result.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor fans a list of accounts out over a worker pool. One
// account failing never stops the others.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor wires an analyzer to a pool of the given size.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessAccounts analyzes the accounts concurrently and returns one
// result per account, in completion order. A context canceled before the
// call yields no results; canceled mid-run, the accounts still queued are
// abandoned and whatever already finished is returned.
func (b *BatchProcessor) ProcessAccounts(ctx context.Context, accounts []string) []*AnalyzeResult {
	if len(accounts) == 0 || ctx.Err() != nil {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	stop := context.AfterFunc(ctx, pool.cancelFunc)
	defer stop()
	pool.Start()

	for _, account := range accounts {
		pool.Submit(&AnalyzeJob{
			Account:  account,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		out[i] = result.(*AnalyzeResult)
	}

	return out
}

// ProcessFile reads an accounts file and analyzes every entry.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	accounts, err := ReadAccountsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	return b.ProcessAccounts(ctx, accounts), nil
}

// ReadAccountsFromFile loads account names, one per line. Blank lines
// and # comments are skipped; duplicates are dropped keeping the first
// occurrence.
func ReadAccountsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open accounts file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var accounts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			accounts = append(accounts, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan accounts file: %w", err)
	}

	return accounts, nil
}
