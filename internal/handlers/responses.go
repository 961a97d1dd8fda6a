package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apperrors "github.com/justsurfingit/job-catalog/internal/errors"
)

// StatusFor maps a domain error to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError attaches err to the request for the access log and writes
// {"error": message}. Causes of non-domain errors are never sent to clients.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	c.AbortWithStatusJSON(StatusFor(err), gin.H{
		"error": apperrors.PublicMessage(err, "internal server error"),
	})
}

// respondBindError reports a request body that could not be decoded or
// failed validation.
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = describe(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "invalid posting",
			"fields": fields,
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
}

// fieldPath drops the root struct name from the namespace, leaving the JSON
// path of the field, e.g. "employer.name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
