package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names, not Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func utcNow() time.Time { return time.Now().UTC() }

// decodeBody decodes the JSON body into dst and runs its validate tags.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewValidationError("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return errs.NewViolationsError(validationMessages(err))
	}
	return nil
}

func validationMessages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"invalid request body"}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", field))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "gte":
			out = append(out, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "lte":
			out = append(out, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		case "min":
			out = append(out, fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
