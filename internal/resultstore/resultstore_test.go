package resultstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

var testRun = runidentifier.RunIdentifier{
	Target:    "example.com",
	Parameter: "session_id",
	RunID:     "run-001",
}

func TestMakeFilename(t *testing.T) {
	tests := []struct {
		run   runidentifier.RunIdentifier
		label string
		want  string
	}{
		{testRun, "", "run-001.json"},
		{testRun, "quick", "quick-run-001.json"},
		{runidentifier.RunIdentifier{}, "", "results.json"},
		{runidentifier.RunIdentifier{}, "quick", "quick.json"},
	}
	for _, test := range tests {
		if got := MakeFilename(test.run, test.label); got != test.want {
			t.Errorf("MakeFilename(%v, %q) = %q, want %q", test.run, test.label, got, test.want)
		}
	}
}

func TestSaveConstructsPath(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	rs := New("file://"+tmpDir, ConstructPath())
	analysis := &report.Result{
		Security: report.Verdict{OverallRating: report.RatingGood},
	}
	if err := rs.Save(ctx, testRun, analysis); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "example.com", "session_id", "run-001.json"))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}

	var stored struct {
		Run              runidentifier.RunIdentifier `json:"run"`
		CreatedTimestamp int64                       `json:"created"`
		Analysis         *report.Result              `json:"analysis"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if stored.Run != testRun {
		t.Errorf("stored run = %+v, want %+v", stored.Run, testRun)
	}
	if stored.CreatedTimestamp == 0 {
		t.Error("created timestamp not set")
	}
	if stored.Analysis == nil || stored.Analysis.Security.OverallRating != report.RatingGood {
		t.Errorf("stored analysis = %+v", stored.Analysis)
	}
}

func TestSaveWithFilenameRejectsEmpty(t *testing.T) {
	rs := New("file://" + t.TempDir())
	if err := rs.SaveWithFilename(context.Background(), testRun, "", nil); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestSaveCapturesAndCSV(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	rs := New("file://"+tmpDir, BasePath("runs"))
	captures := []report.TokenCapture{{Token: "abc123", ExtractedFrom: "cookie"}}

	if err := rs.SaveCaptures(ctx, testRun, captures); err != nil {
		t.Fatalf("SaveCaptures: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tmpDir, "runs", "captures-run-001.json"))
	if err != nil {
		t.Fatalf("stored captures: %v", err)
	}
	var restored []report.TokenCapture
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(restored) != 1 || restored[0].Token != "abc123" {
		t.Errorf("restored = %v", restored)
	}

	if err := rs.SaveCSV(ctx, testRun, captures); err != nil {
		t.Fatalf("SaveCSV: %v", err)
	}
	csvData, err := os.ReadFile(filepath.Join(tmpDir, "runs", "captures.csv"))
	if err != nil {
		t.Fatalf("stored csv: %v", err)
	}
	if len(csvData) == 0 {
		t.Error("empty CSV export")
	}
}

func TestString(t *testing.T) {
	rs := New("file:///results", BasePath("base"), ConstructPath())
	if got := rs.String(); got != "file:///results/base+" {
		t.Errorf("String = %q", got)
	}
}
