package validation

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/velomart/storefront/internal/server/http/dto"
)

var validate = validatorv10.New()

// BindAndValidate binds the JSON body into out and runs struct validation.
// On failure it writes a 400 with the error envelope and returns the error
// so the handler can short-circuit.
func BindAndValidate(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "invalid request body",
			Error:   err.Error(),
		})
		return err
	}

	if err := validate.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "validation failed",
			Error:   describeValidationError(err),
		})
		return err
	}
	return nil
}

func describeValidationError(err error) string {
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fe.Namespace()+" failed on "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
