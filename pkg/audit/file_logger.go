package audit

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/thebartekbanach/rstream/pkg/stream"
)

// FileLogger writes one JSON line per closed stream.
type FileLogger struct {
	log    zerolog.Logger
	closer io.Closer
}

var _ stream.AuditLogger = (*FileLogger)(nil)

func NewFileLogger(w io.Writer) *FileLogger {
	return &FileLogger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// OpenFileLogger appends records to file at path, creating it if needed.
func OpenFileLogger(path string) (*FileLogger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	logger := NewFileLogger(file)
	logger.closer = file
	return logger, nil
}

func (l *FileLogger) IsLogEnabled() bool {
	return true
}

func (l *FileLogger) LogCloseOut(logStreamID stream.LogStreamID, userTime, ioTime time.Duration, bytesWritten int64) {
	l.log.Log().
		Str("event", "close_out").
		Str("logStreamId", string(logStreamID)).
		Int64("userTimeNs", userTime.Nanoseconds()).
		Int64("ioTimeNs", ioTime.Nanoseconds()).
		Int64("bytesWritten", bytesWritten).
		Send()
}

func (l *FileLogger) Close() error {
	if l.closer == nil {
		return nil
	}

	return l.closer.Close()
}
