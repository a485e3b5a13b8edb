package controller

import (
	"exam_studio_backend/internal/service"
	"exam_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 创建题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param questionId path string true "客户端本地ID"
// @Param body body service.QuestionRequest true "题目字段"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/question/{questionId} [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Create(ctx.Param("id"), ctx.Param("questionId"), user.UserID, req)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, result)
}

// @Summary 更新题目
// @Tags 题目
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param questionId path string true "题目ID"
// @Param body body service.QuestionRequest true "题目字段"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/question/{questionId} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	examID := ctx.Param("id")
	q, err := c.Service.Update(examID, ctx.Param("questionId"), user.UserID, req)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, gin.H{"id": examID, "question": []interface{}{q}})
}

// @Summary 删除题目
// @Tags 题目
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param questionId path string true "题目ID"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id}/question/{questionId} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Delete(ctx.Param("id"), ctx.Param("questionId"), user.UserID)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, result)
}
