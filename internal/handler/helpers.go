package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service-layer errors onto HTTP statuses. Unknown errors
// are attached to the context for the ErrorHandler middleware to log and
// surface as an opaque 500.
func respondError(c *gin.Context, err error) {
	var ve *apierror.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, ve)
	case errors.Is(err, apierror.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("not found"))
	case errors.Is(err, apierror.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.New("insufficient stock"))
	case errors.Is(err, apierror.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, apierror.New("invalid credentials"))
	case errors.Is(err, apierror.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New("insufficient role"))
	default:
		_ = c.Error(err)
	}
}
