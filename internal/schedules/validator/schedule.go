package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"classbook/pkg/logger"
	"classbook/pkg/model"
	"classbook/pkg/timegrid"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type DayScheduleValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDayScheduleValidator(log *logger.Logger) *DayScheduleValidator {
	v := validator.New()

	if err := v.RegisterValidation("grid_label", validateGridLabel); err != nil {
		log.Fatal("Failed to register 'grid_label' validator", "error", err)
	}
	if err := v.RegisterValidation("schedule_date", validateScheduleDate); err != nil {
		log.Fatal("Failed to register 'schedule_date' validator", "error", err)
	}

	log.Info("Day schedule validator initialized successfully")

	return &DayScheduleValidator{
		validate: v,
		logger:   log,
	}
}

func validateGridLabel(fl validator.FieldLevel) bool {
	return timegrid.Contains(fl.Field().String())
}

func validateScheduleDate(fl validator.FieldLevel) bool {
	date := fl.Field().String()
	if len(date) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func (v *DayScheduleValidator) Validate(day *model.DaySchedule) error {
	if err := v.validate.Struct(day); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *DayScheduleValidator) ValidateBulkApply(req *model.BulkApplyRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *DayScheduleValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must have at least %s entries or characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must have at most %s entries or characters", err.Field(), err.Param())
		case "grid_label":
			message = fmt.Sprintf("%s must be a grid time label between 08:00 AM and 08:00 PM in HH:MM AM/PM format", err.Field())
		case "schedule_date":
			message = fmt.Sprintf("%s must be a calendar date in YYYY-MM-DD format", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
