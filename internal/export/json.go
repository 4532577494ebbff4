package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/greenconnect/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	TotalScore int         `json:"total_score"`
	Streak     int         `json:"streak"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImpactScore int    `json:"impact_score"`
}

func ToJSON(entries []store.ActivityLogEntry, stats store.UserStats, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		TotalScore: stats.TotalScore,
		Streak:     stats.Streak,
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			ID:          e.ID,
			Date:        e.Date.Local().Format(time.RFC3339),
			Category:    string(e.Category),
			Description: e.Description,
			ImpactScore: e.ImpactScore,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FileName returns the export file name for the given date and extension.
func FileName(day time.Time, ext string) string {
	return fmt.Sprintf("greenconnect-export-%s.%s", day.Format("2006-01-02"), ext)
}
