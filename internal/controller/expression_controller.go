package controller

import (
	"exam_studio_backend/internal/service"
	"exam_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExpressionController struct {
	Service *service.ExpressionService
}

func NewExpressionController(svc *service.ExpressionService) *ExpressionController {
	return &ExpressionController{Service: svc}
}

// @Summary 创建表达式
// @Description 路径中的 expressionId 是客户端本地短 ID，服务端返回 <短ID>-<后缀> 形式的正式 ID
// @Tags 表达式
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param expressionId path string true "客户端本地ID"
// @Param body body service.ExpressionRequest true "表达式字段"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/expression/{expressionId} [post]
func (c *ExpressionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExpressionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Create(ctx.Param("id"), ctx.Param("expressionId"), user.UserID, req)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, result)
}

// @Summary 更新表达式
// @Tags 表达式
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param expressionId path string true "表达式ID"
// @Param body body service.ExpressionRequest true "表达式字段"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/expression/{expressionId} [put]
func (c *ExpressionController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExpressionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	examID := ctx.Param("id")
	expr, err := c.Service.Update(examID, ctx.Param("expressionId"), user.UserID, req)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, gin.H{"id": examID, "expression": []interface{}{expr}})
}

// @Summary 删除表达式
// @Tags 表达式
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param expressionId path string true "表达式ID"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/expression/{expressionId} [delete]
func (c *ExpressionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Delete(ctx.Param("id"), ctx.Param("expressionId"), user.UserID)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, result)
}
