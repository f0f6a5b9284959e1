package config

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError reports a CUE configuration error with its position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	first := errs[0]
	path := first.Path()
	field := "cue"
	if len(path) > 0 {
		field = path[0]
		for _, p := range path[1:] {
			field += "." + p
		}
	}
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   field,
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &CompileError{Field: field, Message: first.Error()}
}
