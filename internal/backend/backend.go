// Package backend runs parsed programs as the last stage of the pipeline.
package backend

import (
	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/funvibe/funqy/internal/pipeline"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (evaluator.Value, error)

	// Name returns the backend name for display
	Name() string
}
