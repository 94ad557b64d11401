package audit

import (
	"time"

	"github.com/thebartekbanach/rstream/pkg/stream"
)

// MultiLogger forwards every record to each enabled logger.
type MultiLogger []stream.AuditLogger

var _ stream.AuditLogger = (MultiLogger)(nil)

func NewMultiLogger(loggers ...stream.AuditLogger) MultiLogger {
	return MultiLogger(loggers)
}

func (m MultiLogger) IsLogEnabled() bool {
	for _, logger := range m {
		if logger.IsLogEnabled() {
			return true
		}
	}

	return false
}

func (m MultiLogger) LogCloseOut(logStreamID stream.LogStreamID, userTime, ioTime time.Duration, bytesWritten int64) {
	for _, logger := range m {
		if logger.IsLogEnabled() {
			logger.LogCloseOut(logStreamID, userTime, ioTime, bytesWritten)
		}
	}
}
