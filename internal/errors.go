package internal

import (
	"errors"
	"fmt"
)

// ErrInsufficientSelection is matched by InsufficientSelectionError via errors.Is
var ErrInsufficientSelection = errors.New("no evidence selected")

// ErrRunCancelled is returned when the caller abandons a run
var ErrRunCancelled = errors.New("run cancelled")

// StorageError represents errors accessing the evidence database
type StorageError struct {
	Path string
	Op   string // "open", "query", "insert", "schema"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "evidence", "prompts", "import"
	Key    string // record id or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InsufficientSelectionError is returned when a derivation has nothing to work on
type InsufficientSelectionError struct {
	Goal Goal
}

func (e *InsufficientSelectionError) Error() string {
	return fmt.Sprintf("cannot generate %s: select at least one evidence item", e.Goal)
}

func (e *InsufficientSelectionError) Is(target error) bool {
	return target == ErrInsufficientSelection
}

// ConfigError represents errors loading configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
