package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	govalidator "github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags used across the app registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sortorder", ValidateSortOrder); err != nil {
		panic(err)
	}
	return v
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		jsonName := strings.Split(tag, ",")[0]
		if jsonName != "" {
			return jsonName
		}
	}
	return camelToSnake(origFieldName)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

// ValidateStruct returns nil when obj is valid. obj must be a struct value.
func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := reflect.TypeOf(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg != "" {
		return
	}
	isString := err.Kind() == reflect.String
	switch err.Tag() {
	case "required":
		errorMsg = "This field is required"
	case "max":
		if isString {
			errorMsg = fmt.Sprintf("Must be at most %s characters long", err.Param())
		} else {
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		}
	case "min":
		if isString {
			errorMsg = fmt.Sprintf("Must be at least %s characters long", err.Param())
		} else {
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		}
	case "gte":
		errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
	case "lte":
		errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
	case "lt":
		errorMsg = fmt.Sprintf("Value should be less than %s", err.Param())
	case "gt":
		errorMsg = fmt.Sprintf("Value should be greater than %s", err.Param())
	case "oneof":
		errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
	case "len":
		errorMsg = fmt.Sprintf("Length should be equal to %s", err.Param())
	case "sortorder":
		errorMsg = "Value should be one of asc, desc"
	default:
		errorMsg = "This field is invalid"
	}
	return
}

// CUSTOM VALIDATORS

func ValidateSortOrder(fl govalidator.FieldLevel) bool {
	order := fl.Field().String()
	return strings.EqualFold(order, "asc") || strings.EqualFold(order, "desc")
}
