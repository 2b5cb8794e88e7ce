package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apierrors "github.com/burhanudinera2018/microservice-management-aset-v2/internal/errors"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/models"
)

var registerOnce sync.Once

// RegisterValidators installs the decimal validators on gin's validator engine
// and makes validation errors report JSON field names. Safe to call more than
// once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		// Validate decimals by their string form so the tags below see a
		// plain value rather than the struct internals.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && d.IsPositive()
		})
		_ = v.RegisterValidation("decimal_gte0", func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			return err == nil && !d.IsNegative()
		})
	})
}

// bindJSON binds the request body into req and writes the error response
// itself when binding fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	return bindResult(c, c.ShouldBindJSON(req), "Invalid request body")
}

// bindQuery is bindJSON for query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	return bindResult(c, c.ShouldBindQuery(req), "Invalid query parameters")
}

func bindResult(c *gin.Context, err error, message string) bool {
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return false
	}
	apierrors.BadRequest(c, message, map[string]interface{}{"error": err.Error()})
	return false
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		apierrors.BadRequest(c, "Invalid id", map[string]interface{}{"id": c.Param("id")})
		return 0, false
	}
	return id, true
}

// parseDates converts YYYY-MM-DD start and end fields.
func parseDates(c *gin.Context, start, end string) (time.Time, time.Time, bool) {
	s, err := models.ParseDate(start)
	if err != nil {
		apierrors.BadRequest(c, "Invalid start date", map[string]interface{}{"value": start})
		return time.Time{}, time.Time{}, false
	}
	e, err := models.ParseDate(end)
	if err != nil {
		apierrors.BadRequest(c, "Invalid end date", map[string]interface{}{"value": end})
		return time.Time{}, time.Time{}, false
	}
	return s, e, true
}
