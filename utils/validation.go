package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared struct validator for request payloads
var Validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages holds the user-facing message per Struct.Field and tag
var fieldMessages = map[string]string{
	"Title.required":        "Complaint title is required",
	"Category.required":     "Select a category",
	"Description.required":  "Description is required",
	"Description.min":       "Description must be at least 10 characters",
	"Location.required":     "Location is required",
	"Photos.max":            "At most 10 photos are allowed",
	"Name.required":         "Name is required",
	"Email.required":        "Email is required",
	"Email.email":           "Invalid email",
	"Password.required":     "Password is required",
	"Password.min":          "Minimum 6 characters",
	"GovernmentID.required": "Government ID is required",
}

// FieldErrors converts validator errors into a field -> message map.
// Field names are the lower-camel JSON/form names.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

// FormatFieldErrors joins field errors into one deterministic message
func FormatFieldErrors(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if s == "GovernmentID" {
		return "governmentId"
	}
	return strings.ToLower(s[:1]) + s[1:]
}
