// Package handler gin 路由处理层：参数绑定、错误到状态码的映射。
// 业务规则全部在 repository/service 层。
package handler

import (
	"errors"
	"strconv"

	"github.com/bitfantasy/nimo-orders/internal/repository"
	"github.com/bitfantasy/nimo-orders/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers 处理器集合
type Handlers struct {
	PriceList *PriceListHandler
	Product   *ProductHandler
	Customer  *CustomerHandler
	Order     *OrderHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(repos *repository.Repositories, services *service.Services) *Handlers {
	return &Handlers{
		PriceList: NewPriceListHandler(repos.PriceList),
		Product:   NewProductHandler(repos.Product),
		Customer:  NewCustomerHandler(repos.Customer),
		Order:     NewOrderHandler(repos.Order, services),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail 按错误类别映射响应：校验错误 400、目标不存在 404、
// 格式不支持 400，其余（含数据损坏）500
func Fail(c *gin.Context, err error) {
	var ve *repository.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Reason)
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// pathID 解析路径中的整数 id
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		BadRequest(c, "id 无效")
		return 0, false
	}
	return id, true
}
