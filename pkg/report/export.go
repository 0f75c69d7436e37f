package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the column layout of the flat capture export.
var CSVHeader = []string{"Index", "Token", "Length", "Extracted From", "Request Sent", "Response Received"}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// WriteCSV writes the capture list as RFC 4180 CSV (embedded quotes are
// escaped by doubling, courtesy of encoding/csv).
func WriteCSV(w io.Writer, captures []TokenCapture) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, c := range captures {
		record := []string{
			strconv.Itoa(i),
			c.Token,
			strconv.Itoa(len(c.Token)),
			c.ExtractedFrom,
			formatTime(c.RequestSent),
			formatTime(c.ResponseReceived),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the full export document: captures plus analysis,
// stamped with the current time.
func WriteJSON(w io.Writer, captures []TokenCapture, analysis *Result) error {
	doc := Document{
		Timestamp:     time.Now().UTC(),
		TokenCaptures: captures,
		Analysis:      analysis,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export document: %w", err)
	}
	return nil
}
