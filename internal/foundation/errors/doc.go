// Package errors provides the classified error primitives used across webdoc.
//
// Key features:
//   - ErrorCategory: broad classification (config, validation, template, render, filesystem, ...)
//   - ErrorSeverity: impact level
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and presentation for the CLI
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryRender, "template rendering failed").
//		WithContext("path", relPath).
//		Build()
package errors
