package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":          "{field} is required",
		"required_with":     "{field} is required when {param} is set",
		"gt":                "{field} must be greater than {param}",
		"gte":               "{field} must be greater than or equal to {param}",
		"lte":               "{field} must be less than or equal to {param}",
		"ltefield":          "{field} must be less than or equal to {param}",
		"oneof":             "{field} must be one of {param}",
		"max":               "{field} must be at most {param}",
		"min":               "{field} must be at least {param}",
		"email":             "{field} must be a valid email address",
		"uuid":              "{field} must be a valid id",
		"url":               "{field} must be a valid url",
		"datetime":          "{field} must be a date in the format {param}",
		"clock":             "{field} must be a time in the format HH:MM",
		"hexcolor_or_empty": "{field} must be a hex color such as #8B1538",
		"mimetypes":         "{field} must be one of {param}",
		"maxfilesize":       "{field} must not be larger than {param} MB",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := messages[valErr.Tag()]
			if errStr == "" {
				continue
			}

			errStr = strings.ReplaceAll(errStr, "{field}", fieldName(valErr))
			errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

			return errStr
		}

		return valErrors.Error()
	}

	return err.Error()
}

// fieldName keeps the slice index for dive errors, e.g. starting_times[1].
func fieldName(valErr val.FieldError) string {
	ns := valErr.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return valErr.Field()
}
