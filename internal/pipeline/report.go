package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/renameio/v2"
)

// Report is the JSON document describing one finished run.
type Report struct {
	RunID      string    `json:"run_id"`
	Input      string    `json:"input"`
	Profile    string    `json:"profile"`
	Output     string    `json:"output,omitempty"`
	Streams    int       `json:"streams"`
	Converted  int       `json:"converted"`
	Status     string    `json:"status"` // "ok" or "failed"
	Error      string    `json:"error,omitempty"`
	KeptTemp   bool      `json:"kept_temp,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewReport builds a Report from a run summary and its error, if any.
func NewReport(sum *Summary, runErr error) *Report {
	r := &Report{
		RunID:      sum.RunID,
		Input:      sum.Input,
		Profile:    sum.Profile,
		Output:     sum.Output,
		Streams:    sum.Streams,
		Converted:  sum.Converted,
		Status:     "ok",
		KeptTemp:   sum.KeptTemp,
		DurationMS: sum.Duration.Milliseconds(),
		FinishedAt: time.Now().UTC(),
	}
	if runErr != nil {
		r.Status = "failed"
		r.Error = runErr.Error()
		r.Output = ""
	}
	return r
}

// WriteReport writes the report to path atomically, so a crash mid-write
// never leaves a truncated document behind.
func WriteReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	pf, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer pf.Cleanup()

	if _, err := pf.Write(data); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return pf.CloseAtomicallyReplace()
}
