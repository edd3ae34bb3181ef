package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// Maps returns field -> message pairs
// Maps 返回 字段 -> 错误消息 的映射
func (v ValidErrors) Maps() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

func (v ValidErrors) MapsToString() map[string]string {
	return v.Maps()
}

// BindAndValid binds request params into v and translates validation failures
// with the translator stored on the context by the lang middleware
// BindAndValid 绑定请求参数到 v，使用 lang 中间件存入上下文的翻译器翻译校验错误
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
		return false, errs
	}

	trans, ok := c.Value("trans").(ut.Translator)
	if !ok {
		for _, verr := range verrs {
			errs = append(errs, &ValidError{Key: verr.Field(), Message: verr.Error()})
		}
		return false, errs
	}

	for key, value := range verrs.Translate(trans) {
		errs = append(errs, &ValidError{Key: key, Message: value})
	}
	return false, errs
}
