package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/models/request_models"
	"tripdesk/internal/services"
	"tripdesk/pkg/utils"
)

type CheckoutController struct {
	checkoutService services.CheckoutServiceInterface
}

func NewCheckoutController(checkoutService services.CheckoutServiceInterface) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// StartSession godoc
// @Summary Start a checkout session for one or more activities
// @Description Fetches the booking questionnaire for every activity in the cart and builds the step sequence
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body request_models.StartCheckoutRequest true "Cart contents"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions [post]
func (ct *CheckoutController) StartSession(c *gin.Context) {
	var request request_models.StartCheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := ct.checkoutService.StartSession(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Checkout session started")
}

// GetSession godoc
// @Summary Get the current state of a checkout session
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id} [get]
func (ct *CheckoutController) GetSession(c *gin.Context) {
	session, err := ct.checkoutService.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "")
}

// SetAnswer godoc
// @Summary Set a booking or main-traveler answer
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SetAnswerRequest true "Answer change"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/answers [put]
func (ct *CheckoutController) SetAnswer(c *gin.Context) {
	var request request_models.SetAnswerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := ct.checkoutService.SetAnswer(c.Request.Context(), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Answer saved")
}

// StageDraft godoc
// @Summary Stage a value in the traveler draft buffer
// @Description Draft values only reach the answer tree on commit
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.StageDraftRequest true "Draft change"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/travelers/draft [put]
func (ct *CheckoutController) StageDraft(c *gin.Context) {
	var request request_models.StageDraftRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ct.checkoutService.StageDraft(c.Request.Context(), c.Param("id"), request); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Draft saved")
}

// OpenSlotDraft godoc
// @Summary Open a traveler slot for editing
// @Description Repopulates the draft buffer from the slot's committed answers; slot -1 starts a blank draft for the next unfilled slot
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Param slot path int true "Slot index, or -1 for add-next"
// @Param activity_index query int false "Activity index"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/travelers/{slot}/draft [get]
func (ct *CheckoutController) OpenSlotDraft(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid slot index")
		return
	}
	activityIndex, err := strconv.Atoi(c.DefaultQuery("activity_index", "0"))
	if err != nil || activityIndex < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid activity index")
		return
	}

	draft, err := ct.checkoutService.OpenSlotDraft(c.Request.Context(), c.Param("id"), activityIndex, slot)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "")
}

// CommitSlot godoc
// @Summary Commit the traveler draft into a slot
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.CommitSlotRequest true "Commit target"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/travelers/commit [post]
func (ct *CheckoutController) CommitSlot(c *gin.Context) {
	var request request_models.CommitSlotRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := ct.checkoutService.CommitSlot(c.Request.Context(), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Traveler saved")
}

// UpdateClientInfo godoc
// @Summary Save the client-info form and billing identity
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ClientInfoRequest true "Client info"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/client-info [put]
func (ct *CheckoutController) UpdateClientInfo(c *gin.Context) {
	var request request_models.ClientInfoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	session, err := ct.checkoutService.UpdateClientInfo(c.Request.Context(), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Client info saved")
}

// Advance godoc
// @Summary Advance to the next checkout step
// @Description Fails if the current step's completion guard does not pass
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/advance [post]
func (ct *CheckoutController) Advance(c *gin.Context) {
	session, err := ct.checkoutService.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Step advanced")
}

// EditClientInfo godoc
// @Summary Return to the client-info step without losing answers
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/edit-client-info [post]
func (ct *CheckoutController) EditClientInfo(c *gin.Context) {
	session, err := ct.checkoutService.EditClientInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Returned to client info")
}

// Submit godoc
// @Summary Submit the validated answers and create the reservation
// @Description Returns the payment handle for the confirmation step
// @Tags Checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/submit [post]
func (ct *CheckoutController) Submit(c *gin.Context) {
	handle, err := ct.checkoutService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, handle, "Reservation submitted")
}

// ConfirmPayment godoc
// @Summary Confirm the payment for a submitted reservation
// @Description On success the session is torn down and the guest receives their order credentials
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.ConfirmPaymentRequest true "Payment method"
// @Success 200 {object} utils.APIResponse
// @Router /checkout/sessions/{id}/confirm [post]
func (ct *CheckoutController) ConfirmPayment(c *gin.Context) {
	var request request_models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	order, err := ct.checkoutService.ConfirmPayment(c.Request.Context(), c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, order, "Payment confirmed")
}
