package prompt

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVContext reads the CSV file at path and renders it as "CSV DATA:\n<rows>".
// An empty path yields an empty context.
func CSVContext(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open CSV context: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return "", fmt.Errorf("read CSV context %s: %w", path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("render CSV context: %w", err)
	}
	return "CSV DATA:\n" + buf.String(), nil
}
