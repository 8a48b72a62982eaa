// Package log writes structured diagnostics for batch processing runs
// to a file-backed zerolog logger.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog  zerolog.Logger
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: VMDROP_LOG_PATH environment variable
	envPath := os.Getenv("VMDROP_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	f, err := os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

// FileLoaded records a decoded input file.
func FileLoaded(file string, duration float64, rate, channels int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("file", file).
		Float64("duration_s", duration).
		Int("rate", rate).
		Int("channels", channels).
		Msg("file_loaded")
}

// Decision records the drop decision for one stream.
func Decision(file, reason string, at, confidence float64) {
	if !logReady {
		return
	}
	ev := diagLog.Info().
		Str("file", file).
		Str("reason", reason).
		Float64("drop_s", at)
	if confidence > 0 {
		ev = ev.Float64("confidence", confidence)
	}
	ev.Msg("drop_decision")
}

// SpliceWritten records a persisted spliced output file.
func SpliceWritten(file, output string, samples int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("file", file).
		Str("output", output).
		Int("samples", samples).
		Msg("splice_written")
}

// OracleRequest records timing for one remote completeness judgment.
func OracleRequest(total, ttfb time.Duration, connReused bool) {
	if !logReady {
		return
	}
	connStatus := "new"
	if connReused {
		connStatus = "reused"
	}
	diagLog.Info().
		Float64("total_ms", float64(total.Milliseconds())).
		Float64("ttfb_ms", float64(ttfb.Milliseconds())).
		Str("conn", connStatus).
		Msg("oracle_request")
}

// BatchSummary records the end-of-run tally.
func BatchSummary(total, succeeded, failed int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("total", total).
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("batch_summary")
}
