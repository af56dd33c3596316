package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Write stores header and rows as a CSV file at path, replacing it.
func Write(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close csv file %q: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err = w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}
