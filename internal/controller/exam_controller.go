package controller

import (
	"errors"
	"exam_studio_backend/internal/service"
	"exam_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

// @Summary 试卷列表
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} model.Exam
// @Router /api/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	exams, err := c.Service.List(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, exams)
}

// @Summary 试卷详情
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} model.Exam
// @Router /api/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	exam, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	user := util.GetUserFromContext(ctx)
	if !exam.Public && (user == nil || user.UserID != exam.AuthorID) {
		util.Forbidden(ctx)
		return
	}

	util.Success(ctx, exam)
}

// @Summary 建卷
// @Tags 试卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateExamRequest true "试卷属性"
// @Success 201 {object} model.Exam
// @Router /api/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.Service.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrFieldsRequired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"_id": exam.ID})
}

// @Summary 更新试卷属性
// @Tags 试卷
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Param body body service.UpdateExamPropertiesRequest true "属性子集"
// @Success 200 {object} util.DataBody
// @Router /api/exams/{id} [put]
func (c *ExamController) UpdateProperties(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateExamPropertiesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	props, err := c.Service.UpdateProperties(ctx.Request.Context(), ctx.Param("id"), user.UserID, req)
	if err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Data(ctx, props)
}

// @Summary 删除试卷
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} map[string]bool
// @Router /api/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), ctx.Param("id"), user.UserID); err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// @Summary 管理端删除试卷
// @Description 管理员可删除任意作者的试卷
// @Tags 试卷
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "试卷ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/exams/{id} [delete]
func (c *ExamController) AdminDelete(ctx *gin.Context) {
	if err := c.Service.ForceDelete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		writeExamError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// writeExamError 把服务层错误映射为 HTTP 类别
func writeExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrExpressionNotFound),
		errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrFieldsRequired),
		errors.Is(err, util.ErrValidation):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
