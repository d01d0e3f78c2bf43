package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on v and returns a ValidationError
// naming the first offending field.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &AppError{
			Kind:    KindValidation,
			Message: fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()),
			Err:     err,
		}
	}
	return &AppError{Kind: KindValidation, Message: "Invalid request", Err: err}
}

// DecodeJSON strictly decodes a JSON body into dst and validates it.
// Unknown fields and trailing data are rejected.
func DecodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &AppError{Kind: KindValidation, Message: "Invalid request body", Err: err}
	}
	if dec.More() {
		return Validation("Invalid request body")
	}
	return ValidateStruct(dst)
}

// ParseStringList accepts either a JSON array or a comma separated list.
func ParseStringList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return nil, &AppError{Kind: KindValidation, Message: "Invalid list", Err: err}
		}
		return out, nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}
