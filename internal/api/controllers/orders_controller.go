package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/models/request_models"
	"tripdesk/internal/services"
	"tripdesk/pkg/utils"
)

type OrdersController struct {
	orderService services.OrderServiceInterface
}

func NewOrdersController(orderService services.OrderServiceInterface) *OrdersController {
	return &OrdersController{
		orderService: orderService,
	}
}

// UnlockOrder godoc
// @Summary Unlock an order with its access code
// @Description Trades the one-time access code for the order detail view and a guest token
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request_models.UnlockOrderRequest true "Access code"
// @Success 200 {object} utils.APIResponse
// @Router /orders/{id}/unlock [post]
func (o *OrdersController) UnlockOrder(c *gin.Context) {
	var request request_models.UnlockOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	unlocked, err := o.orderService.UnlockOrder(c.Request.Context(), c.Param("id"), request.AccessCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, unlocked, "Order unlocked")
}

// GetOrder godoc
// @Summary Get the order detail view
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (o *OrdersController) GetOrder(c *gin.Context) {
	order, err := o.orderService.GetOrderDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "")
}
