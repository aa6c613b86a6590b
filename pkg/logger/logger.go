package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jademcosta/logroller/pkg/config"
)

const (
	ComponentKey         = "component"
	ObjStorageTypeKey    = "obj_storage_type"
	ExternalQueueTypeKey = "ext_queue_type"
)

func New(conf config.LogConfig) *slog.Logger {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.ToUpper(conf.Level)))
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if conf.Format == "console" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// NewDummy returns a logger that discards everything. Meant for tests.
func NewDummy() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
