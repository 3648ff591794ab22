package validate

import (
	"strings"

	"github.com/auth-flow-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// Struct validates the given struct using its validate tags. Failures come
// back as a bad-request domain error with one source entry per failed
// field, so handlers can surface field-level messages directly.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Wrap(domain.KindBadRequest, "invalid request", err)
	}
	sources := make([]domain.ErrorSource, 0, len(ve))
	for _, fe := range ve {
		sources = append(sources, domain.ErrorSource{
			Path:    strings.ToLower(fe.Field()),
			Message: "failed '" + fe.Tag() + "' validation",
		})
	}
	e := domain.E(domain.KindBadRequest, "validation error")
	e.Sources = sources
	return e
}
