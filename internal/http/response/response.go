package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Msg       string      `json:"msg"`                 // 提示消息
	Success   bool        `json:"success"`             // 是否成功
	Data      interface{} `json:"data,omitempty"`      // 数据内容
	RequestID string      `json:"requestId,omitempty"` // 仅错误响应携带
}

// ValidationResponse 校验失败响应
type ValidationResponse struct {
	Msg       string       `json:"msg"`
	Success   bool         `json:"success"`
	Errors    []FieldError `json:"errors"`
	RequestID string       `json:"requestId,omitempty"`
}

// FieldError 字段级校验错误
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Payload 单条数据载荷
type Payload struct {
	Data interface{} `json:"data"`
}

// PageData 分页数据载荷
type PageData struct {
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	PerPage int         `json:"perPage"`
	PageNo  int         `json:"pageNo"`
}

// Success 成功响应，data 为 nil 时不返回 data 字段
func Success(c *gin.Context, status int, msg string, data interface{}) {
	resp := Response{Msg: msg, Success: true}
	if data != nil {
		resp.Data = Payload{Data: data}
	}
	c.JSON(status, resp)
}

// OK 200 响应
func OK(c *gin.Context, msg string, data interface{}) {
	Success(c, http.StatusOK, msg, data)
}

// Created 201 响应
func Created(c *gin.Context, msg string, data interface{}) {
	Success(c, http.StatusCreated, msg, data)
}

// Page 分页成功响应
func Page(c *gin.Context, msg string, data interface{}, total int64, perPage, pageNo int) {
	c.JSON(http.StatusOK, Response{
		Msg:     msg,
		Success: true,
		Data: PageData{
			Data:    data,
			Total:   total,
			PerPage: perPage,
			PageNo:  pageNo,
		},
	})
}

// Error 错误响应
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{
		Msg:       msg,
		Success:   false,
		RequestID: requestID(c),
	})
}

// ValidationFailed 422 校验失败响应
func ValidationFailed(c *gin.Context, msg string, errs []FieldError) {
	if errs == nil {
		errs = []FieldError{}
	}
	c.JSON(http.StatusUnprocessableEntity, ValidationResponse{
		Msg:       msg,
		Success:   false,
		Errors:    errs,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
