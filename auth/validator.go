package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"travelmate/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCommand checks the validate tags of a command and reports the
// first violations as ErrInvalidCommand.
func ValidateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) && len(violations) > 0 {
			v := violations[0]
			return fmt.Errorf("%w: %s failed on '%s'", errors.ErrInvalidCommand, v.Field(), v.Tag())
		}
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
