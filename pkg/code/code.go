package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 错误消息
	Lang lang
	// 数据
	data  interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError registers an error code; duplicate registration panics at init time
// NewError 注册一个错误码，重复注册会在初始化时 panic
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss registers a success code
// NewSuss 注册一个成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Reset clears per-request state so registered codes can be reused
// Reset 清除单次请求状态，便于注册的码对象复用
func (e *Code) Reset() *Code {
	e.data = nil
	e.haveData = false
	e.details = []string{}
	e.haveDetails = false
	return e
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	return &Code{
		code:        e.code,
		status:      e.status,
		Lang:        e.Lang,
		data:        nil,
		haveData:    false,
		details:     []string{},
		haveDetails: false,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = []string{}
	e.details = append(e.details, details...)
	return e
}

func (e *Code) StatusCode() int {
	return http.StatusOK
}
