package controller

import (
	"exam_studio_backend/internal/service"
	"exam_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	Service *service.DictionaryService
}

func NewDictionaryController(svc *service.DictionaryService) *DictionaryController {
	return &DictionaryController{Service: svc}
}

// @Summary 界面词典
// @Description 按语言标签返回嵌套词典，未知语言回退默认语言
// @Tags 本地化
// @Produce json
// @Param lang path string true "语言标签"
// @Success 200 {object} map[string]interface{}
// @Router /api/dictionary/{lang} [get]
func (c *DictionaryController) Get(ctx *gin.Context) {
	dict, err := c.Service.Lookup(ctx.Request.Context(), ctx.Param("lang"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dict)
}

// @Summary 可用语言列表
// @Tags 本地化
// @Produce json
// @Success 200 {array} string
// @Router /api/dictionary [get]
func (c *DictionaryController) Locales(ctx *gin.Context) {
	util.Success(ctx, c.Service.SupportedLocales())
}
