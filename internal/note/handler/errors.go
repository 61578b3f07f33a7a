package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/notekit/notekit/backend/go-services/internal/apperr"
	"github.com/notekit/notekit/backend/go-services/pkg/logger"
)

const invalidRequest = "Invalid request data"

// writeError maps an application error to its HTTP status and body.
// Internal and provider failures are logged; only a generic message is returned.
func writeError(c *gin.Context, err error) {
	e := apperr.As(err)
	switch e.Kind {
	case apperr.KindValidation:
		details := e.Fields
		if details == nil {
			details = []apperr.FieldError{}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Message, "details": details})
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Message})
	case apperr.KindProvider:
		logger.Errorf("%s %s: provider error (blocked=%t): %v", c.Request.Method, c.FullPath(), e.Blocked, e.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": e.Message})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bindError turns a gin binding failure into a validation error with field details.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{Field: jsonName(fe.Field()), Message: fieldMessage(fe)})
		}
		return apperr.Validation(invalidRequest, fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperr.Validation(invalidRequest, apperr.FieldError{Field: field, Message: "must be " + typeErr.Type.String()})
	}

	return apperr.Validation(invalidRequest, apperr.FieldError{Field: "body", Message: "malformed JSON body"})
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonName(fe.Field())
	label := strings.ToUpper(name[:1]) + name[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", label, fe.Tag())
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
