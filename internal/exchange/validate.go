package exchange

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/TermiSenpai/APP-Cuaderno-de-practicas/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("finite", finite); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// finite rejects NaN and infinite floats, which JSON cannot encode.
func finite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

type dayList struct {
	Days []model.DayInput `json:"dias" validate:"unique=Date,dive"`
}

// Validate checks field formats: ISO dates, unique day dates, finite
// non-negative hours and #RRGGBB palette colors.
func Validate(cfg *model.NotebookConfig, days []model.DayInput) error {
	if cfg != nil {
		if err := validate.Struct(cfg); err != nil {
			return describe("config", err)
		}
	}
	if err := validate.Struct(dayList{Days: days}); err != nil {
		return describe("", err)
	}
	return nil
}

// ValidateConfig checks a notebook config on its own.
func ValidateConfig(cfg model.NotebookConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return describe("config", err)
	}
	return nil
}

func describe(prefix string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		if prefix != "" {
			field = prefix + "." + field
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, message(fe)))
	}
	return fmt.Errorf("%w: %s", ErrInvalidFormat, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("%v is not a YYYY-MM-DD date", fe.Value())
	case "gte":
		return "must not be negative"
	case "finite":
		return "must be a finite number"
	case "hexcolor":
		return fmt.Sprintf("%v is not a #RRGGBB color", fe.Value())
	case "unique":
		return "contains duplicated dates"
	default:
		return "failed " + fe.Tag()
	}
}
