package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/vibewham/vibe-wham/backend/internal/geo"
)

// Validator implements echo.Validator on top of go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the custom rules registered.
func NewValidator() *Validator {
	v := validator.New()
	// ewkt_point accepts the SRID=4326;POINT(lon lat) wire literal with
	// in-range coordinates.
	_ = v.RegisterValidation("ewkt_point", func(fl validator.FieldLevel) bool {
		_, err := geo.ParseEWKT(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Validate checks a bound request struct and maps failures to a 400 with
// field-level detail.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		var fields []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				fields = append(fields, fe.Error())
			}
			return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{"errors": fields})
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
