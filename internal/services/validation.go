package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"deptevents/internal/domain"
)

const mp4ContentType = "video/mp4"

func newEventValidator() *validator.Validate {
	v := validator.New()
	// minwords=N: at least N whitespace-separated words.
	_ = v.RegisterValidation("minwords", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(strings.Fields(fl.Field().String())) >= n
	})
	return v
}

// normalizeInput trims the free-text fields the way the forms submit them.
func normalizeInput(in domain.EventInput) domain.EventInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Venue = strings.TrimSpace(in.Venue)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// validateEventInput returns a *domain.ValidationError carrying the message for the
// first failed rule. Missing fields take precedence over every other rule.
func validateEventInput(v *validator.Validate, in domain.EventInput) error {
	if err := v.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msg := ""
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return domain.NewValidationError(domain.MsgRequiredFields)
			}
			if msg == "" {
				msg = validationMessage(fe)
			}
		}
		return domain.NewValidationError(msg)
	}
	if in.Video != nil && !isMP4(in.Video.ContentType) {
		return domain.NewValidationError(domain.MsgVideoFormat)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "minwords":
		return domain.MsgDescriptionWords
	case "datetime":
		return domain.MsgInvalidDate
	default:
		return domain.MsgRequiredFields
	}
}

// isMP4 is case-sensitive: the content type becomes the data URI prefix, and
// only "data:video/mp4" URIs are rendered.
func isMP4(contentType string) bool {
	return strings.Contains(contentType, mp4ContentType)
}
