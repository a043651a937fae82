package internal

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestShowProgress(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		fn      func(ctx context.Context) error
		wantErr error
	}{
		{"success", func(context.Context) error { return nil }, nil},
		{"failure", func(context.Context) error { return boom }, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			err := ShowProgress(context.Background(), "Working", func(ctx context.Context) error {
				called = true
				return tt.fn(ctx)
			})
			if !called {
				t.Error("fn was not called")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ShowProgress() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgress_LogsMessageVerbatim(t *testing.T) {
	if isTerminal(os.Stderr) {
		t.Skip("stderr is a terminal; progress renders a spinner instead of logging")
	}
	originalLevel := logger.GetLevel()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer func() {
		SetLogOutput(os.Stderr)
		logger.SetLevel(originalLevel)
	}()
	SetLogLevel(LogLevelInfo)

	if err := ShowProgress(context.Background(), "Billing 100% of calls", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("ShowProgress() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Billing 100% of calls") || strings.Contains(out, "%!") {
		t.Errorf("progress message mangled: %q", out)
	}
}

func TestShowProgressWithSteps(t *testing.T) {
	var order []string
	step := func(name string, err error) ProgressStep {
		return ProgressStep{Message: name, Fn: func(context.Context) error {
			order = append(order, name)
			return err
		}}
	}

	boom := errors.New("boom")
	err := ShowProgressWithSteps(context.Background(), []ProgressStep{
		step("load", nil),
		step("derive", boom),
		step("export", nil),
	})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "derive") {
		t.Errorf("ShowProgressWithSteps() error = %v", err)
	}
	if strings.Join(order, ",") != "load,derive" {
		t.Errorf("steps run = %v, want load,derive", order)
	}
}

func TestShowSpinner(t *testing.T) {
	var buf bytes.Buffer
	if err := showSpinner(context.Background(), &buf, "Deriving", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("showSpinner() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Deriving") {
		t.Errorf("spinner output = %q", buf.String())
	}

	buf.Reset()
	boom := errors.New("boom")
	if err := showSpinner(context.Background(), &buf, "Failing", func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("showSpinner() error = %v, want boom", err)
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
