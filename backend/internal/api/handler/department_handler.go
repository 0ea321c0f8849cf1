package handler

import (
	"github.com/gin-gonic/gin"

	"faculty-records/backend/internal/service"
	"faculty-records/backend/pkg/response"
)

// DepartmentHandler 院系模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// List 院系列表（录入表单下拉选项）
// GET /api/v1/departments
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, departments)
}
