package arena

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GameRecord is one row in the series record file.
type GameRecord struct {
	Game     int
	Swapped  bool
	Score    float64
	Moves    int
	Duration time.Duration
}

// RecordWriter writes series records as CSV files under a timestamped
// directory.
type RecordWriter struct {
	baseDir string
}

func NewRecordWriter(root string) (*RecordWriter, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &RecordWriter{baseDir: baseDir}, nil
}

// Dir returns the directory records are written into.
func (w *RecordWriter) Dir() string {
	return w.baseDir
}

func (w *RecordWriter) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"game", "swapped", "score", "moves", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Game),
			strconv.FormatBool(record.Swapped),
			strconv.FormatFloat(record.Score, 'f', 3, 64),
			strconv.Itoa(record.Moves),
			record.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return writer.Error()
}
