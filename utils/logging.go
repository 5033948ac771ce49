package utils

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NoopCloser is an io.Closer with nothing to release
type NoopCloser struct{}

// Close always succeeds
func (NoopCloser) Close() error { return nil }

// SetupLogging points the standard logger at stderr and, when logFile is set,
// a size-rotated copy on disk. The returned closer flushes the rotated file.
func SetupLogging(logFile string) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if logFile == "" {
		log.SetOutput(os.Stderr)
		return NoopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.Printf("SetupLogging: Writing logs to %s", logFile)
	return rotator
}
