package util

import (
	"exam_studio_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody 统一错误响应结构，状态码表达类别（400 校验 / 401 认证 / 500 异常）
type ErrorBody struct {
	Error string `json:"error"`
}

// DataBody 统一数据响应结构
type DataBody struct {
	Data interface{} `json:"data"`
}

func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

func Data(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, DataBody{Data: payload})
}

func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{Error: message})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}
