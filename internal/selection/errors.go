package selection

import (
	"errors"
	"fmt"
)

// Selection error codes (S001-S009)
const (
	ErrInvalidMaterial      = "S001" // material not Copper or Aluminium
	ErrInvalidClass         = "S002" // class not offered by the catalog
	ErrInvalidConnectorType = "S003" // unknown connector type
	ErrInvalidCrossSection  = "S004" // cross section not in the derived set
	ErrInvalidStudHole      = "S005" // stud hole not in the derived set
	ErrInvalidPin           = "S006" // empty pin identifier or unknown kind
)

// InvalidSelectionError reports a rejected criterion or pin.
type InvalidSelectionError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("[%s] %s %q: %s", e.Code, e.Field, e.Value, e.Message)
}

// IsInvalidSelection returns true if err is an InvalidSelectionError.
// Uses errors.As to handle wrapped errors.
func IsInvalidSelection(err error) bool {
	var se *InvalidSelectionError
	return errors.As(err, &se)
}

func invalid(code, field, value, format string, args ...any) *InvalidSelectionError {
	return &InvalidSelectionError{
		Code:    code,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}
