package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulearn-platform/learning-service/internal/services"
	"github.com/edulearn-platform/learning-service/internal/utils"
)

type ModuleHandler struct {
	BaseHandler
	moduleService services.ModuleService
}

func NewModuleHandler(moduleService services.ModuleService, logger utils.Logger) *ModuleHandler {
	return &ModuleHandler{
		BaseHandler:   NewBaseHandler(logger),
		moduleService: moduleService,
	}
}

func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.moduleService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"modules": modules})
}

// Create publishes a module; route is gated to teachers and admins.
func (h *ModuleHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, ok := currentUserRole(c)
	if !ok {
		abortForbidden(c, "user role not found in context")
		return
	}

	var req services.CreateModuleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	module, err := h.moduleService.Create(c.Request.Context(), &req, userID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Module created successfully",
		Data:    module,
	})
}
