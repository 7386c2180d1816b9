// Package source reads and writes coffer JSONL backups.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	"github.com/theirongolddev/coffer/internal/model"
)

// ParseResult holds the output of parsing a single backup file.
type ParseResult struct {
	Transactions []model.Transaction
	Budgets      []model.Budget
	ParseErrors  int
	Err          error
}

// ParseFile reads a backup file line by line. Transactions are deduplicated
// by ID and budgets by (label, month), keeping the last line seen. Lines
// with an unknown type are skipped; malformed ones are counted.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var result ParseResult
	txs := make(map[string]int)
	budgets := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		switch extractTopLevelType(line) {
		case TypeTransaction:
			var raw RawTransaction
			if err := json.Unmarshal(line, &raw); err != nil {
				result.ParseErrors++
				continue
			}
			t, ok := raw.toModel()
			if !ok {
				result.ParseErrors++
				continue
			}
			if i, seen := txs[t.ID]; seen {
				result.Transactions[i] = t
				continue
			}
			txs[t.ID] = len(result.Transactions)
			result.Transactions = append(result.Transactions, t)

		case TypeBudget:
			var raw RawBudget
			if err := json.Unmarshal(line, &raw); err != nil {
				result.ParseErrors++
				continue
			}
			b, ok := raw.toModel()
			if !ok {
				result.ParseErrors++
				continue
			}
			key := b.Label + "/" + b.Month
			if i, seen := budgets[key]; seen {
				result.Budgets[i] = b
				continue
			}
			budgets[key] = len(result.Budgets)
			result.Budgets = append(result.Budgets, b)

		case "":
			if !json.Valid(line) {
				result.ParseErrors++
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}
	return result
}

// typeKey is the byte sequence for a JSON key named "type" (with quotes).
var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "type" keys are ignored.
func extractTopLevelType(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				if val, isKey := classifyType(line, i+len(typeKey)); isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// classifyType checks whether pos follows a JSON key and returns its value
// when it is one of the known entry types.
func classifyType(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 20 {
		return "", true
	}
	switch v := string(line[i : i+end]); v {
	case TypeTransaction, TypeBudget:
		return v, true
	}
	return "", true
}

// skipJSONString advances past a JSON string starting at the opening quote.
//
//nolint:gosec // manual bounds checking throughout
func skipJSONString(line []byte, i int) int {
	i++
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
