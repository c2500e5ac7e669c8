package common

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestWithRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New("database is locked"), Retryable: true}
	permanent := errors.New("constraint failed")

	tests := []struct {
		wantErr   error
		results   []error
		name      string
		wantCalls int
	}{
		{name: "succeeds first time", results: []error{nil}, wantCalls: 1},
		{name: "recovers after transient errors", results: []error{transient, transient, nil}, wantCalls: 3},
		{name: "permanent error is not retried", results: []error{permanent}, wantCalls: 1, wantErr: permanent},
		{name: "gives up after max attempts", results: []error{transient, transient, transient}, wantCalls: 3, wantErr: ErrMaxRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				result := tt.results[calls]
				calls++
				return result
			}, fastRetry(3))

			if calls != tt.wantCalls {
				t.Errorf("WithRetry() made %d calls, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("WithRetry() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("WithRetry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("busy"), Retryable: true}
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Second})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithRetry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("WithRetry() made %d calls, want 1", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "plain error", err: errors.New("x"), want: false},
		{name: "marked retryable", err: &RetryableError{Err: errors.New("x"), Retryable: true}, want: true},
		{name: "marked permanent", err: &RetryableError{Err: errors.New("x"), Retryable: false}, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
	}

	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPersistenceError(t *testing.T) {
	if PersistenceError("op", nil) != nil {
		t.Error("PersistenceError(nil) should be nil")
	}

	base := errors.New("disk full")
	err := PersistenceError("save list", base)
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, base) {
		t.Errorf("PersistenceError() = %v, want ErrPersistence wrapping base", err)
	}

	outer := PersistenceError("close cycle", err)
	if strings.Count(outer.Error(), ErrPersistence.Error()) != 1 {
		t.Errorf("PersistenceError() tagged twice: %v", outer)
	}
}

func TestSetupLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	level, err := ParseLevel("warn")
	if err != nil {
		t.Fatalf("ParseLevel() error = %v", err)
	}
	if err := SetupLoggerTo(&buf, level, "json"); err != nil {
		t.Fatalf("SetupLoggerTo() error = %v", err)
	}
	defer func() { _ = SetupLogger(slog.LevelInfo, "console") }()

	slog.Info("hidden")
	slog.Warn("shown", "key", "value")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("log output = %q", buf.String())
	}

	if err := SetupLoggerTo(&buf, 0, "xml"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetupLoggerTo(xml) error = %v, want ErrInvalidConfig", err)
	}
	if _, err := ParseLevel("loud"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseLevel(loud) error = %v, want ErrInvalidConfig", err)
	}
}
