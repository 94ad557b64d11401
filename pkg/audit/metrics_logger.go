package audit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

var phaseBuckets = []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300}

// MetricsLogger turns close-out records into prometheus metrics.
type MetricsLogger struct {
	closedStreams prometheus.Counter
	bytesWritten  prometheus.Counter
	userTime      prometheus.Histogram
	ioTime        prometheus.Histogram
}

var _ stream.AuditLogger = (*MetricsLogger)(nil)

func NewMetricsLogger(reg prometheus.Registerer) *MetricsLogger {
	factory := promauto.With(reg)

	return &MetricsLogger{
		closedStreams: factory.NewCounter(prometheus.CounterOpts{
			Name: "rstream_streams_closed_total",
			Help: "Total number of cleanly closed output streams",
		}),
		bytesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "rstream_stream_bytes_written_total",
			Help: "Total number of bytes written to cleanly closed output streams",
		}),
		userTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rstream_stream_user_time_seconds",
			Help:    "Time spent by callers between stream operations",
			Buckets: phaseBuckets,
		}),
		ioTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rstream_stream_io_time_seconds",
			Help:    "Time spent inside stream write and close calls",
			Buckets: phaseBuckets,
		}),
	}
}

func (m *MetricsLogger) IsLogEnabled() bool {
	return true
}

func (m *MetricsLogger) LogCloseOut(_ stream.LogStreamID, userTime, ioTime time.Duration, bytesWritten int64) {
	m.closedStreams.Inc()
	m.bytesWritten.Add(float64(bytesWritten))
	m.userTime.Observe(userTime.Seconds())
	m.ioTime.Observe(ioTime.Seconds())
}
