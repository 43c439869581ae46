package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"tripdesk/internal/checkout"
	"tripdesk/pkg/utils"
)

// QuestionSets is what the upstream activities API returns for one
// activity + rate: the booking questionnaire plus the traveler contact
// fields not covered by the billing identity.
type QuestionSets struct {
	BookingQuestions        []checkout.QuestionSpec `json:"booking_questions"`
	MainTravelerInfoFields  []checkout.QuestionSpec `json:"main_traveler_info_fields"`
	OtherTravelerInfoFields []checkout.QuestionSpec `json:"other_traveler_info_fields"`
}

// ContactFields adapts the question sets into the shape the tree builder
// takes.
func (q *QuestionSets) ContactFields() checkout.ContactFields {
	return checkout.ContactFields{
		Main:  q.MainTravelerInfoFields,
		Other: q.OtherTravelerInfoFields,
	}
}

type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// ActivityBooking is the per-activity slice of the submission payload.
type ActivityBooking struct {
	ActivityID           string              `json:"activity_id"`
	RateID               string              `json:"rate_id"`
	PartySize            int                 `json:"party_size"`
	PickupRequired       bool                `json:"pickup_required"`
	PickupLocation       string              `json:"pickup_location,omitempty"`
	BookingAnswers       []SubmittedAnswer   `json:"booking_answers"`
	MainTravelerAnswers  []SubmittedAnswer   `json:"main_traveler_answers"`
	OtherTravelerAnswers [][]SubmittedAnswer `json:"other_traveler_answers"`
}

// BookingPayload is the full multi-activity submission sent once every
// step has been validated.
type BookingPayload struct {
	Activities  []ActivityBooking        `json:"activities"`
	Billing     checkout.BillingIdentity `json:"billing"`
	Email       string                   `json:"email"`
	CompanyName string                   `json:"company_name,omitempty"`
	VATNumber   string                   `json:"vat_number,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
}

// PaymentHandle is the upstream's answer to a successful submission: the
// amount to collect and the opaque client secret the payment processor
// confirms against.
type PaymentHandle struct {
	PaymentRef   string `json:"payment_ref"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret"`
}

type ActivitiesProvider interface {
	FetchQuestionSets(ctx context.Context, activityID, rateID string, partySize int) (*QuestionSets, error)
	SubmitBooking(ctx context.Context, payload *BookingPayload) (*PaymentHandle, error)
}

type activitiesAPI struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, *QuestionSets]
}

func NewActivitiesAPI(baseURL string) (ActivitiesProvider, error) {
	cache, err := lru.New[string, *QuestionSets](256)
	if err != nil {
		return nil, err
	}
	return &activitiesAPI{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}, nil
}

// FetchQuestionSets loads the questionnaire for one activity and rate.
// Responses are cached per (activity, rate, party size) since the
// upstream may add questions for larger parties; a fetch failure is
// always surfaced, never treated as an activity with zero questions.
func (a *activitiesAPI) FetchQuestionSets(ctx context.Context, activityID, rateID string, partySize int) (*QuestionSets, error) {
	cacheKey := activityID + "|" + rateID + "|" + strconv.Itoa(partySize)
	if sets, ok := a.cache.Get(cacheKey); ok {
		return sets, nil
	}

	endpoint := fmt.Sprintf("%s/activities/%s/questions?rate_id=%s&party_size=%s",
		a.baseURL, url.PathEscape(activityID), url.QueryEscape(rateID), strconv.Itoa(partySize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("Question spec fetch failed for activity %s: %v", activityID, err)
		return nil, utils.ErrSpecFetchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Question spec fetch for activity %s returned %d", activityID, resp.StatusCode)
		return nil, utils.ErrSpecFetchFailed
	}

	var sets QuestionSets
	if err := json.NewDecoder(resp.Body).Decode(&sets); err != nil {
		return nil, utils.ErrSpecFetchFailed
	}

	a.cache.Add(cacheKey, &sets)
	return &sets, nil
}

// SubmitBooking posts the validated answer payload and returns the
// payment handle the upstream created for it.
func (a *activitiesAPI) SubmitBooking(ctx context.Context, payload *BookingPayload) (*PaymentHandle, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("Booking submission failed: %v", err)
		return nil, utils.ErrReservationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("Booking submission returned %d", resp.StatusCode)
		return nil, utils.ErrReservationFailed
	}

	var handle PaymentHandle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return nil, utils.ErrReservationFailed
	}
	if handle.PaymentRef == "" || handle.ClientSecret == "" {
		return nil, utils.ErrReservationFailed
	}
	return &handle, nil
}
