package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/suremarc/go-almanac/packages/remap/solver"
)

const (
	ModePoint = "point"
	ModeRange = "range"
)

// Report describes one solved input.
//
//easyjson:json
type Report struct {
	RunID                string `json:"run_id"`
	Digest               string `json:"digest"`
	Mode                 string `json:"mode"`
	Gaps                 bool   `json:"gaps,omitempty"`
	Minimum              uint64 `json:"minimum"`
	Points               uint64 `json:"points,omitempty"`
	SeedRanges           uint64 `json:"seed_ranges,omitempty"`
	WorkItems            uint64 `json:"work_items,omitempty"`
	Splits               uint64 `json:"splits,omitempty"`
	DurationMilliseconds int64  `json:"duration_ms"`
}

func New(digest, mode string, gaps bool) Report {
	return Report{
		RunID:  uuid.NewString(),
		Digest: digest,
		Mode:   mode,
		Gaps:   gaps,
	}
}

// Digest identifies an input together with the settings that affect its answer.
func Digest(input []byte, mode string, gaps bool) string {
	h := sha256.New()
	h.Write(input)
	fmt.Fprintf(h, "\x00%s\x00%t", mode, gaps)
	return hex.EncodeToString(h.Sum(nil))
}

func (r *Report) Complete(minimum uint64, stats solver.Stats, elapsed time.Duration) {
	r.Minimum = minimum
	r.Points = stats.Points
	r.SeedRanges = stats.SeedRanges
	r.WorkItems = stats.WorkItems
	r.Splits = stats.Splits
	r.DurationMilliseconds = elapsed.Milliseconds()
}

func (r Report) String() string {
	buf, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("error occurred while marshaling report.Report to JSON: %s", err.Error())
	}

	return string(buf)
}
