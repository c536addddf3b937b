package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "html2pptx.log")
	w := rotatingFile(LogConfig{File: path, MaxSize: 5, MaxBackups: 2, MaxAge: 7, Compress: true})

	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("rotatingFile() = %T, want *lumberjack.Logger", w)
	}
	defer lj.Close()
	if lj.Filename != path || lj.MaxSize != 5 || lj.MaxBackups != 2 || lj.MaxAge != 7 || !lj.Compress {
		t.Errorf("rotatingFile() = %+v", lj)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Laid out 3 slides")
	if !strings.Contains(buf.String(), "Laid out 3 slides (") {
		t.Errorf("progress output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestConfigLogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "logs", "run.log")
	t.Setenv("HTML2PPTX_LOG_FILE", logPath)
	t.Setenv("HTML2PPTX_LOG_LEVEL", "warn")

	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	if _, err := c.Config(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn from log.level", c.Logger.GetLevel())
	}
	c.Logger.Warn("rotated")
	if !strings.Contains(buf.String(), "rotated") {
		t.Error("console output missing after adding log file")
	}
}
