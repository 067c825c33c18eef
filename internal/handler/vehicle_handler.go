package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"dealerops/internal/service"
)

// VehicleHandler handles inventory and comprehensive view endpoints.
type VehicleHandler struct {
	vehicleService service.VehicleService
	errs           *ErrorResponder
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService service.VehicleService, errs *ErrorResponder) *VehicleHandler {
	if errs == nil {
		errs = NewErrorResponder(nil)
	}
	return &VehicleHandler{vehicleService: vehicleService, errs: errs}
}

// List handles GET /api/v1/vehicles
// @Summary List inventory
// @Tags vehicles
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Car,meta=PagMeta} "Inventory page"
// @Security BearerAuth
// @Router /vehicles [get]
func (h *VehicleHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	cars, total, err := h.vehicleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondPaginated(c, cars, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/vehicles/:identifier
func (h *VehicleHandler) Get(c *gin.Context) {
	car, err := h.vehicleService.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondOK(c, car)
}

// View handles GET /api/v1/vehicles/:identifier/view
// @Summary Comprehensive vehicle view
// @Description Merge inventory, repair history, test drives, unified records and location mirrors for one vehicle
// @Tags vehicles
// @Produce json
// @Param identifier path string true "VIN, car code, alias or id"
// @Success 200 {object} APIResponse{data=domain.ComprehensiveVehicleView} "Merged view"
// @Failure 404 {object} ErrorResponseBody "No source knows the vehicle"
// @Security BearerAuth
// @Router /vehicles/{identifier}/view [get]
func (h *VehicleHandler) View(c *gin.Context) {
	view, err := h.vehicleService.View(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.errs.HandleError(c, err)
		return
	}
	RespondOK(c, view)
}
