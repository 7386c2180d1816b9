package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/coffer/internal/model"
)

// writeBackup creates a JSONL file in dir and returns a DiscoveredFile for it.
func writeBackup(t *testing.T, dir, name string, lines ...string) DiscoveredFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return discovered(path)
}

func TestParseFile_TransactionsAndBudgets(t *testing.T) {
	df := writeBackup(t, t.TempDir(), "backup.jsonl",
		`{"type":"transaction","id":"a","kind":"expense","amount":"12.50","date":"2025-03-03","label":"Food","created_at":"2025-03-03T12:00:00Z"}`,
		`{"type":"transaction","id":"b","kind":"income","amount":"2000","date":"2025-03-01","label":"Salary","note":"march","created_at":"2025-03-01T09:00:00Z"}`,
		`{"type":"budget","id":"c","label":"Overall","amount":"1500","month":"2025-03","created_at":"2025-03-01T00:00:00Z"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(result.Transactions))
	}
	if len(result.Budgets) != 1 {
		t.Fatalf("Budgets = %d, want 1", len(result.Budgets))
	}

	food := result.Transactions[0]
	if food.Kind != model.KindExpense || food.Label != "Food" || !food.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("first transaction = %+v", food)
	}
	if want := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC); !food.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", food.CreatedAt, want)
	}
	if result.Transactions[1].Note != "march" {
		t.Errorf("Note = %q, want march", result.Transactions[1].Note)
	}
}

func TestParseFile_DedupKeepsLast(t *testing.T) {
	df := writeBackup(t, t.TempDir(), "backup.jsonl",
		`{"type":"transaction","id":"a","kind":"expense","amount":"1","date":"2025-03-03","label":"Food"}`,
		`{"type":"transaction","id":"a","kind":"expense","amount":"2","date":"2025-03-03","label":"Food"}`,
		`{"type":"budget","label":"Food","amount":"10","month":"2025-03"}`,
		`{"type":"budget","label":"Food","amount":"20","month":"2025-03"}`,
	)

	result := ParseFile(df)
	if len(result.Transactions) != 1 {
		t.Fatalf("Transactions = %d, want 1 (dedup)", len(result.Transactions))
	}
	if !result.Transactions[0].Amount.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Amount = %s, want 2 (last wins)", result.Transactions[0].Amount)
	}
	if len(result.Budgets) != 1 || !result.Budgets[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("Budgets = %+v, want one of 20", result.Budgets)
	}
}

func TestParseFile_CountsMalformedLines(t *testing.T) {
	df := writeBackup(t, t.TempDir(), "backup.jsonl",
		`{"type":"transaction","id":"a","kind":"expense","amount":"1","date":"2025-03-03","label":"Food"}`,
		`{"type":"transaction","id":"b","kind":"expense","amount":"nope"}`,
		`{"type":"transaction","kind":"expense","amount":"1"}`,
		`{"type":"transaction","id":"c","kind":"loan","amount":"1"}`,
		`not json at all`,
		`{"type":"comment","text":"ignored"}`,
		``,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Transactions) != 1 {
		t.Errorf("Transactions = %d, want 1", len(result.Transactions))
	}
	if result.ParseErrors != 4 {
		t.Errorf("ParseErrors = %d, want 4", result.ParseErrors)
	}
}

func TestParseFile_Missing(t *testing.T) {
	result := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")})
	if result.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractTopLevelType(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{`{"type":"transaction","id":"a"}`, "transaction"},
		{`{"id":"a", "type" : "budget"}`, "budget"},
		{`{"meta":{"type":"budget"},"id":"a"}`, ""},
		{`{"note":"type","type":"transaction"}`, "transaction"},
		{`{"type":"session"}`, ""},
		{`{"type":null}`, ""},
		{`[]`, ""},
	}
	for _, tt := range tests {
		if got := extractTopLevelType([]byte(tt.line)); got != tt.want {
			t.Errorf("extractTopLevelType(%s) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestScanPath(t *testing.T) {
	dir := t.TempDir()
	writeBackup(t, dir, "2025-01.jsonl", `{}`)
	writeBackup(t, dir, "nested/2025-02.jsonl", `{}`)
	writeBackup(t, dir, "notes.txt", `{}`)
	writeBackup(t, dir, ".hidden/2025-03.jsonl", `{}`)

	files, err := ScanPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %+v, want 2", files)
	}
	if files[0].Name != "2025-01" || files[1].Name != "2025-02" {
		t.Errorf("names = %q, %q", files[0].Name, files[1].Name)
	}

	single, err := ScanPath(files[0].Path)
	if err != nil || len(single) != 1 {
		t.Errorf("ScanPath(file) = %v, %v", single, err)
	}

	missing, err := ScanPath(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("ScanPath(missing) = %v, %v", missing, err)
	}
}

func TestLoad_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeBackup(t, dir, "a.jsonl",
		`{"type":"transaction","id":"x","kind":"expense","amount":"1","date":"2025-03-03","label":"Food"}`,
		`{"type":"transaction","id":"y","kind":"expense","amount":"5","date":"2025-03-04","label":"Bills"}`,
	)
	writeBackup(t, dir, "b.jsonl",
		`{"type":"transaction","id":"x","kind":"expense","amount":"3","date":"2025-03-03","label":"Food"}`,
		`{"type":"budget","label":"Overall","amount":"100","month":"2025-03"}`,
		`garbage`,
	)

	var calls atomic.Int32
	result, err := Load([]string{dir}, func(_, _ int) { calls.Add(1) })
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalFiles != 2 || result.ParsedFiles != 2 {
		t.Errorf("files total=%d parsed=%d, want 2/2", result.TotalFiles, result.ParsedFiles)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("progress calls = %d, want 2", n)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("Transactions = %d, want 2", len(result.Transactions))
	}
	if !result.Transactions[0].Amount.Equal(decimal.NewFromInt(3)) {
		t.Errorf("x amount = %s, want 3 (later file wins)", result.Transactions[0].Amount)
	}
	if len(result.Budgets) != 1 {
		t.Errorf("Budgets = %d, want 1", len(result.Budgets))
	}
}

func TestLoad_ProgressIsSerialized(t *testing.T) {
	dir := t.TempDir()
	for i := range 24 {
		writeBackup(t, dir, fmt.Sprintf("part-%02d.jsonl", i),
			fmt.Sprintf(`{"type":"transaction","id":"t%d","kind":"expense","amount":"1","date":"2025-03-03","label":"Food"}`, i))
	}

	// Plain slice, no locking: overlapping calls would show up under -race.
	var seen []int
	_, err := Load([]string{dir}, func(current, total int) {
		if total != 24 {
			t.Errorf("total = %d, want 24", total)
		}
		seen = append(seen, current)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 24 {
		t.Fatalf("progress calls = %d, want 24", len(seen))
	}
	for i, n := range seen {
		if n != i+1 {
			t.Fatalf("call %d reported %d, want %d", i, n, i+1)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	txs := []model.Transaction{{
		ID: "a", Kind: model.KindExpense, Amount: decimal.RequireFromString("12.50"),
		Date: "2025-03-03", Label: "Food", Note: "lunch\nwith team", CreatedAt: created,
	}}
	budgets := []model.Budget{{
		ID: "b", Label: model.OverallLabel, Amount: decimal.NewFromInt(1500), Month: "2025-03", CreatedAt: created,
	}}

	var buf bytes.Buffer
	if err := Write(&buf, txs, budgets); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("lines = %d, want 2", n)
	}

	df := writeBackup(t, t.TempDir(), "out.jsonl", strings.TrimSpace(buf.String()))
	result := ParseFile(df)
	if result.ParseErrors != 0 || len(result.Transactions) != 1 || len(result.Budgets) != 1 {
		t.Fatalf("round trip = %+v", result)
	}
	if got := result.Transactions[0]; got.Note != "lunch\nwith team" || !got.CreatedAt.Equal(created) {
		t.Errorf("transaction = %+v", got)
	}
}
