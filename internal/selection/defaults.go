package selection

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/crimpfit/internal/catalog"
)

// Defaults is the initial selection. Unset cross section and stud hole
// default to the smallest value the catalog offers.
type Defaults struct {
	Material      string   `validate:"required,oneof=Copper Aluminium"`
	Class         string   `validate:"required,startswith=Class "`
	ConnectorType string   `validate:"required,oneof='Cable Lug' 'Connector' 'Wire Ferrule'"`
	CrossSection  *float64 `validate:"omitempty,gt=0"`
	StudHole      *float64 `validate:"omitempty,gt=0"`
}

// DefaultDefaults is Copper, Class 2, Cable Lug.
func DefaultDefaults() Defaults {
	return Defaults{
		Material:      string(catalog.Copper),
		Class:         "Class 2",
		ConnectorType: string(catalog.TypeCableLug),
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func defaultsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// fieldCodes maps Defaults fields to selection error codes.
var fieldCodes = map[string]string{
	"Material":      ErrInvalidMaterial,
	"Class":         ErrInvalidClass,
	"ConnectorType": ErrInvalidConnectorType,
	"CrossSection":  ErrInvalidCrossSection,
	"StudHole":      ErrInvalidStudHole,
}

// Validate checks the struct tags and returns the first failure as an
// InvalidSelectionError.
func (d Defaults) Validate() error {
	err := defaultsValidator().Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate defaults: %w", err)
	}
	first := verrs[0]
	return invalid(fieldCodes[first.StructField()], "defaults."+first.StructField(),
		fieldValue(first.Value()), "failed %q constraint", first.Tag())
}

func fieldValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case *float64:
		if x == nil {
			return ""
		}
		return strconv.FormatFloat(*x, 'f', -1, 64)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
