package batch

import "github.com/hamzam170763/pdf-compressor/internal/orchestrator"

// Summary aggregates one batch run. Size totals cover successful files only,
// so the overall ratio is never skewed by inputs that produced no output.
type Summary struct {
	Found           int
	Skipped         int
	Succeeded       int
	Failed          int
	TotalOriginal   int64
	TotalCompressed int64
	Results         []orchestrator.Result
}

// OverallRatio returns the aggregate size reduction in percent.
func (s Summary) OverallRatio() float64 {
	if s.TotalOriginal == 0 {
		return 0
	}
	return float64(s.TotalOriginal-s.TotalCompressed) / float64(s.TotalOriginal) * 100
}

func toMB(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
