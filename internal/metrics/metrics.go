package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	filesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "files_total",
			Help:      "Files processed by result (rebuild, fallback, failed, skipped)",
		},
		[]string{"result"},
	)

	pagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "pages_total",
			Help:      "Pages re-encoded by classification branch (text, image)",
		},
		[]string{"branch"},
	)

	bytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "bytes_total",
			Help:      "Bytes seen on successful compressions by direction (in, out)",
		},
		[]string{"direction"},
	)

	notSmallerTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pdfcompressor",
			Name:      "files_not_smaller_total",
			Help:      "Successful compressions whose output was not smaller than the input",
		},
	)

	stageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pdfcompressor",
			Name:      "stage_duration_seconds",
			Help:      "Duration of compression stages by stage (rebuild, fallback)",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
)

// Init registers collectors.
func Init() {
	prometheus.MustRegister(filesTotal, pagesTotal, bytesTotal, notSmallerTotal, stageDuration)
}

func IncFile(result string) { filesTotal.WithLabelValues(result).Inc() }

func IncPage(branch string) { pagesTotal.WithLabelValues(branch).Inc() }

func IncNotSmaller() { notSmallerTotal.Inc() }

func AddSizes(original, compressed int64) {
	bytesTotal.WithLabelValues("in").Add(float64(original))
	bytesTotal.WithLabelValues("out").Add(float64(compressed))
}

func ObserveStage(stage string, dur time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(dur.Seconds())
}

// Push sends all registered collectors to a Pushgateway. Batch runs have no
// scrape target, so metrics only leave the process this way.
func Push(url, job string) error {
	return push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push()
}
