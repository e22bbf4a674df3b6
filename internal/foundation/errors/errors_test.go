package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "webdoc.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "invalid configuration", err.Error())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "webdoc.yaml", file)
	})

	t.Run("convenience constructors", func(t *testing.T) {
		err := ConfigError("bad value").Build()

		assert.True(t, IsClassified(err))
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.True(t, err.IsFatal())
		assert.False(t, err.CanRetry())
	})
}

func TestWrapChain(t *testing.T) {
	root := errors.New("disk full")
	inner := WrapError(root, CategoryFileSystem, "write failed").
		WithContext("path", "docs/index.md").
		Build()
	outer := WrapError(inner, CategoryInternal, "multi-file generation failed").Build()

	assert.Equal(t, "multi-file generation failed: write failed: disk full", outer.Error())
	assert.ErrorIs(t, outer, root)
	assert.True(t, HasCategory(outer, CategoryFileSystem))
	assert.True(t, HasCategory(outer, CategoryInternal))
	assert.False(t, HasCategory(outer, CategoryRender))
	assert.Equal(t, CategoryFileSystem, RootCategory(outer))
	assert.Equal(t, CategoryInternal, GetCategory(outer))
}

func TestAsClassified_ThroughFmtWrap(t *testing.T) {
	base := NotFoundError("template not found").Build()
	wrapped := fmt.Errorf("loading: %w", base)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Equal(t, CategoryNotFound, got.Category())
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	assert.Equal(t, SeverityError, GetSeverity(errors.New("plain")))
}

func TestErrorContext_Merge(t *testing.T) {
	a := ErrorContext{"a": 1, "shared": "left"}
	b := ErrorContext{"b": 2, "shared": "right"}

	merged := a.Merge(b)
	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 2, merged["b"])
	assert.Equal(t, "right", merged["shared"])
	assert.Equal(t, "left", a["shared"])

	var empty ErrorContext
	assert.Equal(t, b, empty.Merge(b))
}

func TestClassifiedError_WithContextCopies(t *testing.T) {
	original := RenderError("duplicate output path").Build()
	annotated := original.WithContext("path", "docs/a.md")

	_, ok := original.Context().Get("path")
	assert.False(t, ok)
	path, _ := annotated.Context().GetString("path")
	assert.Equal(t, "docs/a.md", path)
	assert.ErrorIs(t, annotated, original)
}
