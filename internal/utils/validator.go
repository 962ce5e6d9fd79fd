package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Component payloads are opaque; large integers must not pass through float64.
	binding.EnableDecoderUseNumber = true
}

// BindAndValidate binds the JSON body to obj and runs its binding tags.
// On failure it writes a 400 error envelope and returns false. An empty
// body is validated as a zero value so that missing required fields get
// the same message as absent ones.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse("Request body too large", err))
		return false
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(bindingMessage(obj, err), err))
	return false
}

func bindingMessage(obj interface{}, err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		field := fieldLabel(getJSONTagName(obj, e.StructField()))

		switch e.Tag() {
		case "required":
			return fmt.Sprintf("%s is required and must be a %s", field, kindName(e.Kind()))
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "min":
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s failed on the '%s' rule", field, e.Tag())
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", fieldLabel(typeErr.Field), kindName(typeErr.Type.Kind()))
	}

	return "Request body must be valid JSON"
}

func kindName(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	}
	return "value"
}

func fieldLabel(name string) string {
	if name == "" {
		return "Field"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// getJSONTagName maps a struct field to the key clients send.
func getJSONTagName(obj interface{}, fieldName string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fieldName
	}
	if f, ok := t.FieldByName(fieldName); ok {
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
			return tag
		}
	}
	return fieldName
}
