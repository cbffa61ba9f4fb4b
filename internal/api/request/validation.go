package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var domainRegex = regexp.MustCompile(`^(?i)([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}\.?$`)

func init() {
	validate.RegisterValidation("domain", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) <= 253 && domainRegex.MatchString(s)
	})
}

// ErrEmptyBody is returned by Decode when the request has no body.
var ErrEmptyBody = errors.New("request body is required")

func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// RequireParam returns s, or an error naming the missing path parameter.
func RequireParam(name, s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing required %s", name)
	}
	return s, nil
}
