package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/cinestream/internal/model"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义规则，使用 json 字段名报错
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin 校验引擎不是 validator/v10")
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

	if err := v.RegisterValidation("content_type", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseContentKind(fl.Field().String())
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("subscription_plan", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.PlanBasic, model.PlanStandard, model.PlanPremium:
			return true
		}
		return false
	})
}

var fieldMessages = map[string]string{
	"required":          "This field is required.",
	"email":             "Enter a valid email address.",
	"content_type":      "Must be one of: movie, tv_show.",
	"subscription_plan": "Must be one of: basic, standard, premium.",
}

// translateFieldError 将单个字段错误转换为可读信息
func translateFieldError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Tag()]; ok {
		return msg
	}
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min", "gte":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("Failed %s validation.", fe.Tag())
}

// bindingErrors 将绑定错误转换为字段错误映射
func bindingErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = translateFieldError(fe)
		}
		return fields
	}
	return map[string]string{"non_field_errors": "Invalid request body."}
}
