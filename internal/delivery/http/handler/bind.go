package handler

import (
	"errors"

	"career-match/internal/delivery/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// bindBody decodes the JSON body into dst and checks its validate tags.
// An empty body leaves dst untouched when optional is set.
func bindBody(c fiber.Ctx, dst any, optional bool) error {
	if optional && len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().Body(dst); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	err := requestValidator.Struct(dst)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", fields, err)
	}
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	return nil
}
