package logger

import (
	"testing"

	"nanny-match/internal/config"

	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	l, err := New(config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if l.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("expected info disabled at warn level")
	}
	if !l.Core().Enabled(zap.WarnLevel) {
		t.Fatalf("expected warn enabled")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("expected non-nil logger")
	}
}
