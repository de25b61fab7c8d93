package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/personarium/personarium/internal/model"
)

type stubAnalyzer struct {
	shouldErr bool
}

func (m *stubAnalyzer) Analyze(ctx context.Context, account string) (*model.PersonaRecord, error) {
	time.Sleep(10 * time.Millisecond)
	if m.shouldErr {
		return nil, errors.New("analyze error")
	}
	return &model.PersonaRecord{Username: account}, nil
}

func writeAccountsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessAccounts(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	accounts := []string{"alice", "bob", "carol"}
	results := processor.ProcessAccounts(context.Background(), accounts)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	seen := make(map[string]bool)
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Account, res.Error)
			continue
		}
		if res.Record == nil {
			t.Errorf("no record for %s", res.Account)
			continue
		}
		if res.Record.Username != res.Account {
			t.Errorf("record for %s names %s", res.Account, res.Record.Username)
		}
		seen[res.Account] = true
	}
	for _, account := range accounts {
		if !seen[account] {
			t.Errorf("no result for %s", account)
		}
	}
}

func TestProcessAccountsReportsFailures(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{shouldErr: true}, 2)

	results := processor.ProcessAccounts(context.Background(), []string{"alice"})

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected an error result")
	}
	if results[0].Record != nil {
		t.Error("failed job must not carry a record")
	}
}

func TestProcessAccountsEmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	results := processor.ProcessAccounts(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("got %d results for no accounts, want 0", len(results))
	}
}

func TestProcessAccountsHonorsCanceledContext(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan []*AnalyzeResult, 1)
	go func() {
		done <- processor.ProcessAccounts(ctx, []string{"alice", "bob", "carol"})
	}()

	select {
	case results := <-done:
		if len(results) > 0 {
			t.Errorf("canceled batch still produced %d results", len(results))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("canceled batch did not return")
	}
}

func TestProcessFile(t *testing.T) {
	path := writeAccountsFile(t, "alice\nbob\n# a comment\n\ncarol\n")
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestProcessFileMissing(t *testing.T) {
	processor := NewBatchProcessor(&stubAnalyzer{}, 2)

	if _, err := processor.ProcessFile(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadAccountsFromFile(t *testing.T) {
	path := writeAccountsFile(t, `alice
# tracked separately
bob

carol   `)

	accounts, err := ReadAccountsFromFile(path)
	if err != nil {
		t.Fatalf("ReadAccountsFromFile: %v", err)
	}

	want := []string{"alice", "bob", "carol"}
	if len(accounts) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(want))
	}
	for i, account := range accounts {
		if account != want[i] {
			t.Errorf("accounts[%d] = %q, want %q", i, account, want[i])
		}
	}
}

func TestReadAccountsFromFileDeduplicates(t *testing.T) {
	path := writeAccountsFile(t, "alice\nbob\nalice\n")

	accounts, err := ReadAccountsFromFile(path)
	if err != nil {
		t.Fatalf("ReadAccountsFromFile: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("got %d accounts after deduplication, want 2", len(accounts))
	}
}

func TestReadAccountsFromFileMissing(t *testing.T) {
	if _, err := ReadAccountsFromFile("no_such_file.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestAnalyzeResultGetError(t *testing.T) {
	ok := &AnalyzeResult{Account: "alice"}
	if ok.GetError() != nil {
		t.Errorf("GetError() = %v, want nil", ok.GetError())
	}

	wantErr := errors.New("analyze failed")
	failed := &AnalyzeResult{Account: "alice", Error: wantErr}
	if failed.GetError() != wantErr {
		t.Errorf("GetError() = %v, want %v", failed.GetError(), wantErr)
	}
}
