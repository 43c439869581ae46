package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

// HandleServiceError maps service-layer errors onto HTTP responses. A
// declined payment is the one case where the upstream message goes out
// as-is instead of a fixed string.
func HandleServiceError(c *gin.Context, err error) {
	var declined *PaymentDeclinedError
	switch {
	case errors.As(err, &declined):
		RespondError(c, http.StatusPaymentRequired, declined.Message)
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Checkout session not found or expired")
	case errors.Is(err, ErrOrderNotFound):
		RespondError(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, ErrQuestionsIncomplete):
		RespondError(c, http.StatusBadRequest, "Please complete all required questions before continuing")
	case errors.Is(err, ErrClientInfoIncomplete):
		RespondError(c, http.StatusBadRequest, "Please provide your billing information before continuing")
	case errors.Is(err, ErrAlreadyPaying):
		RespondError(c, http.StatusBadRequest, "Checkout is already at the payment step")
	case errors.Is(err, ErrAlreadyEditing):
		RespondError(c, http.StatusBadRequest, "Checkout is already at the client info step")
	case errors.Is(err, ErrNotAtPayment):
		RespondError(c, http.StatusBadRequest, "Checkout has not reached the payment step")
	case errors.Is(err, ErrAlreadySubmitted):
		RespondError(c, http.StatusConflict, "Reservation already submitted, complete or retry the payment")
	case errors.Is(err, ErrPaymentHandleMissing):
		RespondError(c, http.StatusBadRequest, "Reservation has not been submitted yet")
	case errors.Is(err, ErrReservationFailed):
		RespondError(c, http.StatusBadGateway, "Reservation error, please try again")
	case errors.Is(err, ErrSpecFetchFailed):
		RespondError(c, http.StatusBadGateway, "Could not load booking questions, please try again")
	case errors.Is(err, ErrInvalidAccessCode):
		RespondError(c, http.StatusUnauthorized, "Invalid access code")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
