package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// validateProduct checks that every required field is present. Values are not
// range checked: any string or integer is accepted.
func validateProduct(p ProductRequest, typeErrs []ProductValidationError) []ProductValidationError {
	errs := append([]ProductValidationError{}, typeErrs...)
	reported := make(map[string]bool, len(typeErrs))
	for _, e := range typeErrs {
		reported[e.Field] = true
	}

	missing := func(field string) {
		if !reported[field] {
			errs = append(errs, ProductValidationError{Field: field, Description: field + " is required"})
		}
	}
	if p.Name == nil {
		missing("name")
	}
	if p.Quantity == nil {
		missing("quantity")
	}
	if p.Quality == nil {
		missing("quality")
	}
	if p.Description == nil {
		missing("decs")
	}
	return errs
}

// typeErrors turns a JSON type mismatch into a field error. Any other decode
// error is returned as is.
func typeErrors(err error) ([]ProductValidationError, error) {
	if err == nil {
		return nil, nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []ProductValidationError{{
			Field:       typeErr.Field,
			Description: fmt.Sprintf("%s must be of type %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}, nil
	}
	return nil, err
}
