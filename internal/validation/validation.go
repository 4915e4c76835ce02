package validation

import (
	"errors"
	"net/url"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayouts are the accepted spellings of a calendar date or timestamp.
var DateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their JSON name so details match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// notblank rejects strings that are empty once trimmed. Pointers are
	// dereferenced by validator before the rule runs.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return strings.TrimSpace(value) != ""
	})

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := ParseDate(value, time.UTC)
		return err == nil
	})

	// weburl accepts absolute http(s) links only.
	v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		u, err := url.Parse(strings.TrimSpace(value))
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "http" || u.Scheme == "https"
	})

	return &Validator{v: v}
}


// ParseDate accepts any of DateLayouts; values without a zone are read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range DateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Errors maps request fields to the rule they failed.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field, rule := range e {
		fields = append(fields, field+"="+rule)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func Field(field, rule string) Errors {
	return Errors{field: rule}
}

// AsErrors extracts field errors from err.
func AsErrors(err error) (Errors, bool) {
	var e Errors
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Check validates s and returns Errors keyed by JSON field name.
func (v *Validator) Check(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errors, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// CheckWith validates s and merges the result into errs, which may already
// hold errors from reading the request. It returns errs when non-empty.
func (v *Validator) CheckWith(s interface{}, errs Errors) error {
	if err := v.Check(s); err != nil {
		fields, ok := AsErrors(err)
		if !ok {
			return err
		}
		for field, rule := range fields {
			errs[field] = rule
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
