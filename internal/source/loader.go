package source

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/theirongolddev/coffer/internal/model"
)

// LoadResult holds the merged output of every backup file under the paths.
type LoadResult struct {
	Transactions []model.Transaction
	Budgets      []model.Budget
	TotalFiles   int
	ParsedFiles  int
	ParseErrors  int
	FileErrors   int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
// Calls never overlap and current increases by one each time.
type ProgressFunc func(current, total int)

// Load discovers and parses backup files under paths with a bounded worker
// pool. Records are merged in discovery order, so a later file overrides an
// earlier one for the same transaction ID or budget key.
func Load(paths []string, progressFn ProgressFunc) (*LoadResult, error) {
	var files []DiscoveredFile
	for _, p := range paths {
		found, err := ScanPath(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		files = append(files, found...)
	}

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result, nil
	}

	numWorkers := min(max(runtime.GOMAXPROCS(0), 1), len(files))

	work := make(chan int, len(files))
	results := make([]ParseResult, len(files))
	var wg sync.WaitGroup
	var progressMu sync.Mutex
	processed := 0

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = ParseFile(files[idx])

				// Callbacks run one at a time with increasing counts.
				progressMu.Lock()
				processed++
				if progressFn != nil {
					progressFn(processed, len(files))
				}
				progressMu.Unlock()
			}
		}()
	}
	wg.Wait()

	txIndex := make(map[string]int)
	budgetIndex := make(map[string]int)
	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors

		for _, t := range pr.Transactions {
			if i, ok := txIndex[t.ID]; ok {
				result.Transactions[i] = t
				continue
			}
			txIndex[t.ID] = len(result.Transactions)
			result.Transactions = append(result.Transactions, t)
		}
		for _, b := range pr.Budgets {
			key := b.Label + "/" + b.Month
			if i, ok := budgetIndex[key]; ok {
				result.Budgets[i] = b
				continue
			}
			budgetIndex[key] = len(result.Budgets)
			result.Budgets = append(result.Budgets, b)
		}
	}
	return result, nil
}
