package request_models

// UnlockOrderRequest trades the order access code for a guest token.
type UnlockOrderRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}
