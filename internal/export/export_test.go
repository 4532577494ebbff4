package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/greenconnect/internal/store"
)

func sampleData() ([]store.ActivityLogEntry, store.UserStats) {
	s := store.New()
	s.Add(store.CategoryTransport, "Cycled to work", 8)
	s.Add(store.CategoryFood, "Plant-based lunch", 5)
	s.Add(store.CategoryWaste, "Fixed a jacket instead of buying one", 6)
	return s.Entries(), s.Stats()
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	entries, _ := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(entries, path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"ID", "Date", "Category", "Description", "Impact"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Most recent first
	row := records[1]
	if row[0] != entries[0].ID {
		t.Fatalf("ID = %q, want %q", row[0], entries[0].ID)
	}
	if row[2] != "Waste" {
		t.Fatalf("Category = %q, want Waste", row[2])
	}
	if row[4] != "6" {
		t.Fatalf("Impact = %q, want 6", row[4])
	}
	if _, err := time.Parse(time.RFC3339, row[1]); err != nil {
		t.Fatalf("Date is not RFC3339: %q", row[1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	err := ToCSV(nil, path)
	if err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	s := store.New()
	s.Add(store.CategoryCommunity, `Hosted a "repair café", fixed 12 items`, 9)
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(s.Entries(), path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][3] != `Hosted a "repair café", fixed 12 items` {
		t.Fatalf("description mangled: %q", records[1][3])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	entries, stats := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	err := ToJSON(entries, stats, path)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.Count != 3 || len(result.Entries) != 3 {
		t.Fatalf("count = %d, entries = %d, want 3", result.Count, len(result.Entries))
	}
	if result.TotalScore != 19 {
		t.Fatalf("total_score = %d, want 19", result.TotalScore)
	}
	if result.Streak != stats.Streak {
		t.Fatalf("streak = %d, want %d", result.Streak, stats.Streak)
	}

	e := result.Entries[2]
	if e.Category != "transport" || e.Description != "Cycled to work" || e.ImpactScore != 8 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ID != entries[2].ID {
		t.Fatalf("ID = %q, want %q", e.ID, entries[2].ID)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, store.UserStats{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Count != 0 {
		t.Fatalf("count = %d, want 0", result.Count)
	}
	if result.Entries != nil {
		t.Fatal("entries should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(nil, store.UserStats{}, "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, store.UserStats{}, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be indented")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	entries, stats := sampleData()
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(entries, stats, path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, e := range result.Entries {
		if _, err := time.Parse(time.RFC3339, e.Date); err != nil {
			t.Fatalf("date is not valid RFC3339: %q", e.Date)
		}
	}
}

func TestFileName(t *testing.T) {
	day := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	if got := FileName(day, "csv"); got != "greenconnect-export-2026-10-14.csv" {
		t.Fatalf("FileName = %q", got)
	}
}
