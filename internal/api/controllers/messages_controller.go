package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/models/request_models"
	"tripdesk/internal/services"
	"tripdesk/pkg/utils"
)

type MessagesController struct {
	messageService services.MessageServiceInterface
}

func NewMessagesController(messageService services.MessageServiceInterface) *MessagesController {
	return &MessagesController{
		messageService: messageService,
	}
}

// ListMessages godoc
// @Summary Poll the guest-host message thread
// @Description Returns messages with seq greater than the after parameter
// @Tags Messages
// @Produce json
// @Param id path string true "Order ID"
// @Param after query int false "Last seen sequence number"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/messages [get]
func (m *MessagesController) ListMessages(c *gin.Context) {
	afterSeq, err := strconv.ParseInt(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil || afterSeq < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid after parameter")
		return
	}

	messages, err := m.messageService.ListMessages(c.Request.Context(), c.Param("id"), afterSeq)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, messages, "")
}

// SendMessage godoc
// @Summary Send a guest message on an order
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body request_models.SendMessageRequest true "Message body"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /orders/{id}/messages [post]
func (m *MessagesController) SendMessage(c *gin.Context) {
	var request request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	message, err := m.messageService.SendGuestMessage(c.Request.Context(), c.Param("id"), request.Body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, message, "Message sent")
}
