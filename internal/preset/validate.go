package preset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// opacity accepts a CSS alpha number between 0 and 1.
	_ = v.RegisterValidation("opacity", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && f >= 0 && f <= 1
	})
	return v
}

// Validate checks that p is well formed. In strict mode an unrecognised
// pattern type is rejected instead of being left to the compiler's flat fill.
func Validate(p Preset, strict bool) error {
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrInvalidPreset, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is blank", ErrInvalidPreset)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidPreset)
	}
	if p.Variant == VariantPattern && strict && !p.Parameters.PatternType.Known() {
		return fmt.Errorf("%w: unknown pattern type %q", ErrInvalidPreset, p.Parameters.PatternType)
	}
	return nil
}
