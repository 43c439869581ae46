package response_models

import "tripdesk/internal/checkout"

// ActivityTreeResponse is the render state for one activity's
// questionnaire: the tree itself, its live validation report and the
// traveler-slot chips.
type ActivityTreeResponse struct {
	ActivityID  string              `json:"activity_id"`
	Tree        checkout.AnswerTree `json:"tree"`
	Report      checkout.Report     `json:"report"`
	SlotStates  []bool              `json:"slot_states"`
	FilledSlots int                 `json:"filled_slots"`
}

type CheckoutSessionResponse struct {
	SessionID        string                 `json:"session_id"`
	CurrentStep      checkout.Step          `json:"current_step"`
	Steps            []checkout.Step        `json:"steps"`
	Activities       []ActivityTreeResponse `json:"activities"`
	ClientInfoErrors []checkout.FieldError  `json:"client_info_errors,omitempty"`
}

type DraftResponse struct {
	SlotIndex int            `json:"slot_index"`
	Draft     checkout.Draft `json:"draft"`
}

// PaymentHandleResponse is what the client needs to drive the payment
// widget: the amount being collected and the processor's client secret.
type PaymentHandleResponse struct {
	PaymentRef   string `json:"payment_ref"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret"`
}

// OrderCreatedResponse closes out the checkout: the session is gone and
// the guest is redirected to the order detail view. AccessCode appears
// here once and is never retrievable again.
type OrderCreatedResponse struct {
	OrderID       string `json:"order_id"`
	ReferenceCode string `json:"reference_code"`
	AccessCode    string `json:"access_code"`
	GuestToken    string `json:"guest_token"`
}
