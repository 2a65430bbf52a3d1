package orchestrator

// Result is the per-file compression record fed into batch aggregation.
type Result struct {
	File           string
	Output         string
	Method         string // method that produced the output: "rebuild" or "fallback"
	OriginalSize   int64
	CompressedSize int64
	Success        bool
	NotSmaller     bool // output not smaller than input; still a success
	Kind           string
	Err            error
}

// Ratio returns the size reduction in percent. Negative when the output grew.
func (r Result) Ratio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.CompressedSize) / float64(r.OriginalSize) * 100
}

// SavedBytes returns how many bytes the compression saved.
func (r Result) SavedBytes() int64 {
	return r.OriginalSize - r.CompressedSize
}
