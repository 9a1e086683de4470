// Package validation 提供声明式的请求校验中间件：
// 请求结构体通过 binding 标签声明规则，校验失败统一返回 422 及字段级错误列表。
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/LoushikLK/dynamic-pricing-food-service/internal/constants"
	"github.com/LoushikLK/dynamic-pricing-food-service/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	bodyKey  = "validation.body"
	queryKey = "validation.query"
	uriKey   = "validation.uri"
)

var registerOnce sync.Once

// Register 让校验错误使用 json/form/uri 标签中的字段名，并注册 id 规则
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("id", validID)
	})
}

// validID 字符串形式的记录 ID 必须能放进 uint，溢出的值不能被当作空过滤条件
func validID(fl validator.FieldLevel) bool {
	_, err := strconv.ParseUint(fl.Field().String(), 10, strconv.IntSize)
	return err == nil
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// JSON 校验请求体，通过后可用 Body 读取
func JSON[T any]() gin.HandlerFunc {
	Register()
	return func(c *gin.Context) {
		req := new(T)
		err := c.ShouldBindJSON(req)
		if errors.Is(err, io.EOF) {
			// 空请求体按零值校验，逐字段给出 required 提示
			err = binding.Validator.ValidateStruct(req)
		}
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(bodyKey, req)
		c.Next()
	}
}

// Query 校验查询参数，通过后可用 QueryOf 读取
func Query[T any]() gin.HandlerFunc {
	Register()
	return func(c *gin.Context) {
		req := new(T)
		if err := c.ShouldBindQuery(req); err != nil {
			abort(c, err)
			return
		}
		c.Set(queryKey, req)
		c.Next()
	}
}

// URI 校验路径参数，通过后可用 URIOf 读取
func URI[T any]() gin.HandlerFunc {
	Register()
	return func(c *gin.Context) {
		req := new(T)
		if err := c.ShouldBindUri(req); err != nil {
			abort(c, err)
			return
		}
		c.Set(uriKey, req)
		c.Next()
	}
}

// Body 读取已校验的请求体
func Body[T any](c *gin.Context) *T {
	return get[T](c, bodyKey)
}

// QueryOf 读取已校验的查询参数
func QueryOf[T any](c *gin.Context) *T {
	return get[T](c, queryKey)
}

// URIOf 读取已校验的路径参数
func URIOf[T any](c *gin.Context) *T {
	return get[T](c, uriKey)
}

func get[T any](c *gin.Context, key string) *T {
	if value, ok := c.Get(key); ok {
		if req, ok := value.(*T); ok {
			return req
		}
	}
	return new(T)
}

func abort(c *gin.Context, err error) {
	response.ValidationFailed(c, constants.MsgValidationFailed, Translate(err))
	c.Abort()
}

// Translate 将绑定/校验错误转换为字段级错误
func Translate(err error) []response.FieldError {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out := make([]response.FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			out = append(out, response.FieldError{Field: fe.Field(), Msg: message(fe)})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []response.FieldError{{Field: field, Msg: field + " must be " + kindName(typeErr.Type)}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []response.FieldError{{Field: "body", Msg: "body must be valid JSON"}}
	}

	return []response.FieldError{{Field: "request", Msg: err.Error()}}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of these values: %s", field, strings.Join(strings.Fields(fe.Param()), ","))
	case "number", "numeric":
		return field + " must be numeric"
	case "id":
		return field + " must be a valid id"
	case "gte", "min":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "numeric"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return "valid"
	}
}
