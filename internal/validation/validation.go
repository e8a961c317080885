// Package validation turns untrusted input into canonical values before any
// store access. Titles and message texts are trimmed and measured in
// characters, not bytes. Failures carry a list of Detail entries that the HTTP
// layer returns as-is.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTitleLength = 200
	MaxTextLength  = 5000
)

var (
	ErrInvalidTitle   = errors.New("invalid title")
	ErrInvalidText    = errors.New("invalid text")
	ErrInvalidPage    = errors.New("invalid pagination parameters")
	ErrInvalidRequest = errors.New("invalid request")
)

// Detail is one entry of a structured validation failure.
type Detail struct {
	Type  string   `json:"type"`
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Input any      `json:"input,omitempty"`
}

// Error is returned by every validator in this package. It unwraps to one of
// the Err* sentinels above.
type Error struct {
	kind    error
	Details []Detail
}

func NewError(kind error, details ...Detail) *Error {
	return &Error{kind: kind, Details: details}
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, strings.Join(d.Loc, ".")+": "+d.Msg)
	}
	if len(msgs) == 0 {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error { return e.kind }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so locations match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateTitle trims raw and checks it holds 1..MaxTitleLength characters.
func ValidateTitle(raw string) (string, error) {
	return validateTrimmed(raw, "title", "Title", MaxTitleLength, ErrInvalidTitle)
}

// ValidateText trims raw and checks it holds 1..MaxTextLength characters.
func ValidateText(raw string) (string, error) {
	return validateTrimmed(raw, "text", "Text", MaxTextLength, ErrInvalidText)
}

func validateTrimmed(raw, field, label string, max int, kind error) (string, error) {
	trimmed := strings.TrimSpace(raw)

	// "max" on strings counts runes.
	err := validate.Var(trimmed, "required,max="+strconv.Itoa(max))
	if err == nil {
		return trimmed, nil
	}

	msg := label + " is invalid"
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			msg = label + " cannot be empty or only whitespace"
		case "max":
			msg = fmt.Sprintf("%s cannot exceed %d characters", label, max)
		}
	}

	return "", NewError(kind, Detail{
		Type:  "value_error",
		Loc:   []string{"body", field},
		Msg:   "Value error, " + msg,
		Input: raw,
	})
}

// ValidatePage checks limit is in [1, maxLimit] and offset is not negative.
func ValidatePage(limit, offset, maxLimit int) error {
	var details []Detail

	if err := validate.Var(limit, fmt.Sprintf("gte=1,lte=%d", maxLimit)); err != nil {
		details = append(details, boundDetail(err, "limit", limit, 1, maxLimit))
	}
	if err := validate.Var(offset, "gte=0"); err != nil {
		details = append(details, boundDetail(err, "offset", offset, 0, 0))
	}

	if len(details) > 0 {
		return NewError(ErrInvalidPage, details...)
	}
	return nil
}

func boundDetail(err error, field string, value, min, max int) Detail {
	d := Detail{
		Type:  "greater_than_equal",
		Loc:   []string{"query", field},
		Msg:   fmt.Sprintf("Input should be greater than or equal to %d", min),
		Input: value,
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 && fieldErrs[0].Tag() == "lte" {
		d.Type = "less_than_equal"
		d.Msg = fmt.Sprintf("Input should be less than or equal to %d", max)
	}
	return d
}

// Struct validates a decoded request body against its `validate` tags.
func Struct(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewError(ErrInvalidRequest, Detail{Type: "value_error", Loc: []string{"body"}, Msg: err.Error()})
	}

	details := make([]Detail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		d := Detail{Loc: []string{"body", fe.Field()}}
		switch fe.Tag() {
		case "required":
			d.Type = "missing"
			d.Msg = "Field required"
		default:
			d.Type = "value_error"
			d.Msg = fmt.Sprintf("Value error, failed on the '%s' rule", fe.Tag())
		}
		details = append(details, d)
	}
	return NewError(ErrInvalidRequest, details...)
}

// InvalidInteger reports a path or query value that is not an integer.
func InvalidInteger(source, field, input string) *Error {
	kind := ErrInvalidRequest
	if source == "query" {
		kind = ErrInvalidPage
	}
	return NewError(kind, Detail{
		Type:  "int_parsing",
		Loc:   []string{source, field},
		Msg:   "Input should be a valid integer, unable to parse string as an integer",
		Input: input,
	})
}

// MalformedBody reports a request body that could not be decoded.
func MalformedBody(detailType, msg string) *Error {
	return NewError(ErrInvalidRequest, Detail{
		Type: detailType,
		Loc:  []string{"body"},
		Msg:  msg,
	})
}
