package shared

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate

	steamProfilePattern = regexp.MustCompile(`^https?://s\.team/p/\S+$`)
)

// payloadValidator returns the process-wide validator used for request
// payloads. Struct tags are the single source of field constraints.
func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// s.team short profile URLs are the only friend link format the
		// gift endpoints accept
		_ = validate.RegisterValidation("steam_profile", func(fl validator.FieldLevel) bool {
			return steamProfilePattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidatePayload checks a request struct against its validate tags and
// returns a KindValidation APIError listing every rejected field. The
// check runs before any network call so a defective payload never reaches
// the wire.
func ValidatePayload(payload any) error {
	err := payloadValidator().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &APIError{Kind: KindValidation, Message: err.Error()}
	}

	fields := make([]FieldError, 0, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q constraint (value: %v)", fe.Tag(), fe.Value()),
		})
		names = append(names, fe.Field())
	}

	return &APIError{
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid payload: %s", strings.Join(names, ", ")),
		Fields:  fields,
	}
}
