package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/greenconnect/internal/store"
)

func ToCSV(entries []store.ActivityLogEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Category", "Description", "Impact"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.Date.Local().Format(time.RFC3339),
			e.Category.Label(),
			e.Description,
			strconv.Itoa(e.ImpactScore),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
