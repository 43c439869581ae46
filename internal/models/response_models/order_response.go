package response_models

type ReservationResponse struct {
	ID             string `json:"id"`
	ActivityID     string `json:"activity_id"`
	RateID         string `json:"rate_id"`
	PartySize      int    `json:"party_size"`
	PickupRequired bool   `json:"pickup_required"`
	PickupLocation string `json:"pickup_location,omitempty"`
}

type OrderDetailResponse struct {
	ID            string                `json:"id"`
	ReferenceCode string                `json:"reference_code"`
	Status        string                `json:"status"`
	GuestName     string                `json:"guest_name"`
	GuestEmail    string                `json:"guest_email"`
	AmountMinor   int64                 `json:"amount_minor"`
	Currency      string                `json:"currency"`
	CreatedAt     string                `json:"created_at"`
	Reservations  []ReservationResponse `json:"reservations"`
}

// UnlockOrderResponse pairs the detail view with a guest token for the
// follow-up message endpoints.
type UnlockOrderResponse struct {
	Order      OrderDetailResponse `json:"order"`
	GuestToken string              `json:"guest_token"`
}

type MessageResponse struct {
	ID     string `json:"id"`
	Seq    int64  `json:"seq"`
	Sender string `json:"sender"`
	Body   string `json:"body"`
	SentAt string `json:"sent_at"`
}
