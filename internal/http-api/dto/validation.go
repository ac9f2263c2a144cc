package dto

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FormErrorKey holds errors that don't belong to a single field.
const FormErrorKey = "_form"

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, msg string) {
	// keep the first failing rule per field
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

var registerOnce sync.Once
var registerErr error

// RegisterValidators teaches gin's validator engine the rules used by the forms
// and makes it report fields by their form name. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		registerErr = v.RegisterValidation("notblank", validators.NotBlank)
	})
	return registerErr
}

// TranslateBindError turns the error returned by c.ShouldBind into field messages.
func TranslateBindError(err error) FieldErrors {
	out := FieldErrors{}
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add(FormErrorKey, "The form could not be read, please try again.")
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field must not be empty."
	case "max":
		return fmt.Sprintf("Enter at most %s characters.", fe.Param())
	case "oneof":
		return "Choose a score from 1 to 10."
	default:
		return "Invalid value."
	}
}

// AllowedImageExtensions are the poster types accepted on upload.
var AllowedImageExtensions = []string{"jpg", "jpeg", "png"}

// FileRule checks one constraint on an uploaded file and returns a message on failure.
type FileRule func(fh *multipart.FileHeader) (string, bool)

func FileRequired() FileRule {
	return func(fh *multipart.FileHeader) (string, bool) {
		if fh == nil || fh.Filename == "" {
			return "This field must not be empty.", false
		}
		return "", true
	}
}

func FileAllowed(exts ...string) FileRule {
	return func(fh *multipart.FileHeader) (string, bool) {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
		for _, allowed := range exts {
			if ext == allowed {
				return "", true
			}
		}
		return "Unsupported file format, upload a " + strings.Join(exts, ", ") + " image.", false
	}
}

func FileMaxSize(maxBytes int64) FileRule {
	return func(fh *multipart.FileHeader) (string, bool) {
		if maxBytes > 0 && fh.Size > maxBytes {
			return "The file is too large.", false
		}
		return "", true
	}
}

// ValidateFile applies rules in order and stops at the first failure.
func ValidateFile(errs FieldErrors, field string, fh *multipart.FileHeader, rules ...FileRule) {
	for _, rule := range rules {
		if msg, ok := rule(fh); !ok {
			errs.Add(field, msg)
			return
		}
	}
}
