package errors

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("at least one page is required").Build(), expected: 2},
		{name: "not found", err: NotFoundError("template 'x' not found").Build(), expected: 3},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "render", err: RenderError("template rendering failed").Build(), expected: 11},
		{
			name: "wrapped not found keeps root code",
			err: WrapError(NotFoundError("template 'x' not found").Build(),
				CategoryInternal, "multi-file generation failed").Build(),
			expected: 3,
		},
		{name: "unclassified", err: errors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var stderr, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.stderr = &stderr
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ValidationError("at least one page is required").Build())

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "Error: at least one page is required")
	assert.Contains(t, logs.String(), "category=validation")
}

func TestCLIErrorAdapter_FormatErrorVerbose(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, nil)
	err := FileSystemError("write failed").WithContext("path", "docs/index.md").Build()

	msg := adapter.FormatError(err)
	assert.Contains(t, msg, "[filesystem]")
	assert.Contains(t, msg, "docs/index.md")
	assert.Equal(t, "Error: plain", NewCLIErrorAdapter(false, nil).FormatError(errors.New("plain")))
}
