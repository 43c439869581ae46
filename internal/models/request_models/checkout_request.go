package request_models

// CheckoutActivity identifies one activity being purchased in the cart.
type CheckoutActivity struct {
	ActivityID     string `json:"activity_id" binding:"required"`
	RateID         string `json:"rate_id" binding:"required"`
	PartySize      int    `json:"party_size" binding:"required,min=1"`
	PickupRequired bool   `json:"pickup_required"`
	PickupLocation string `json:"pickup_location"`
}

type StartCheckoutRequest struct {
	Activities []CheckoutActivity `json:"activities" binding:"required,min=1,dive"`
}

// Answer sections addressable through the answers endpoint. Other
// travelers go through the draft/commit endpoints instead.
const (
	SectionBooking      = "booking"
	SectionMainTraveler = "main_traveler"
)

type SetAnswerRequest struct {
	ActivityIndex int    `json:"activity_index" binding:"min=0"`
	Section       string `json:"section" binding:"required,oneof=booking main_traveler"`
	QuestionID    string `json:"question_id" binding:"required"`
	Value         string `json:"value"`
}

type StageDraftRequest struct {
	ActivityIndex int    `json:"activity_index" binding:"min=0"`
	QuestionID    string `json:"question_id" binding:"required"`
	Value         string `json:"value"`
}

// CommitSlotRequest merges the staged draft into a traveler slot. A nil
// SlotIndex targets the first unfilled slot.
type CommitSlotRequest struct {
	ActivityIndex int  `json:"activity_index" binding:"min=0"`
	SlotIndex     *int `json:"slot_index"`
}

type BillingIdentityRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type ClientInfoRequest struct {
	Email               string                  `json:"email"`
	PurchasingAsCompany bool                    `json:"purchasing_as_company"`
	CompanyName         string                  `json:"company_name"`
	VATNumber           string                  `json:"vat_number"`
	Notes               string                  `json:"notes"`
	Billing             *BillingIdentityRequest `json:"billing"`
}

type ConfirmPaymentRequest struct {
	PaymentMethodRef string `json:"payment_method_ref" binding:"required"`
}
