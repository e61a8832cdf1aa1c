package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "mathfall.log"
	maxLogSize  = 10 * 1024 * 1024
)

// Log is the process-wide logger; discards until Init is called
var Log = newLogger(io.Discard)

// Init configures Log from MATHFALL_LOG_LEVEL and MATHFALL_LOG_FORMAT
// Output goes to logs/mathfall.log when debug is set, otherwise it is discarded
// The terminal owns stdout, so logs never go there
// Returns the opened log file for the caller to close, nil when discarding
func Init(debug bool) *os.File {
	if !debug {
		Log.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	file, err := openLogFile()
	if err != nil {
		Log.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	configure(Log)
	Log.SetOutput(file)
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file
}

// Component returns an entry tagged with the component name
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	configure(l)
	return l
}

func configure(l *logrus.Logger) {
	levelName, ok := os.LookupEnv("MATHFALL_LOG_LEVEL")
	if !ok {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(os.Getenv("MATHFALL_LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			DisableColors:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	}
}

// openLogFile creates the log directory and rotates an oversized log aside
func openLogFile() (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		stamp := time.Now().Format("20060102-150405")
		rotated := filepath.Join(logDir, fmt.Sprintf("mathfall-%s.log", stamp))
		if err := os.Rename(logPath, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return file, nil
}
