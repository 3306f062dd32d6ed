package handlers

import (
	"net/http"

	"slotsync/models"
	"slotsync/services/sync"
	"slotsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomerHandler exposes the customer command surface.
type CustomerHandler struct {
	Sync sync.Service
}

func NewCustomerHandler(s sync.Service) *CustomerHandler {
	return &CustomerHandler{Sync: s}
}

// CreateCustomerHandler handles POST /api/customers.
func (h *CustomerHandler) CreateCustomerHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name   string `json:"name" binding:"required"`
		Mobile string `json:"mobile" binding:"required"`
		City   string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid create customer request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	respond(c, h.Sync.CreateCustomer(c.Request.Context(), req.Name, req.Mobile, req.City))
}

// UpdateCustomerHandler handles PATCH /api/customers/:id.
func (h *CustomerHandler) UpdateCustomerHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var updates models.CustomerUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		logger.Warn("Invalid update customer request", zap.String("customerID", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	respond(c, h.Sync.UpdateCustomer(c.Request.Context(), id, updates))
}

// DeleteCustomerHandler handles DELETE /api/customers/:id.
func (h *CustomerHandler) DeleteCustomerHandler(c *gin.Context) {
	respond(c, h.Sync.DeleteCustomer(c.Request.Context(), c.Param("id")))
}
