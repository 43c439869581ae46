package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripdesk/internal/checkout"
	dbm "tripdesk/internal/models/db_models"
	"tripdesk/internal/models/request_models"
	"tripdesk/internal/models/response_models"
	"tripdesk/internal/providers"
	"tripdesk/internal/repositories"
	mem "tripdesk/pkg/memcache"
	"tripdesk/pkg/utils"
)

type CheckoutServiceInterface interface {
	StartSession(ctx context.Context, request request_models.StartCheckoutRequest) (*response_models.CheckoutSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error)
	SetAnswer(ctx context.Context, sessionID string, request request_models.SetAnswerRequest) (*response_models.CheckoutSessionResponse, error)
	StageDraft(ctx context.Context, sessionID string, request request_models.StageDraftRequest) error
	OpenSlotDraft(ctx context.Context, sessionID string, activityIndex int, slot int) (*response_models.DraftResponse, error)
	CommitSlot(ctx context.Context, sessionID string, request request_models.CommitSlotRequest) (*response_models.CheckoutSessionResponse, error)
	UpdateClientInfo(ctx context.Context, sessionID string, request request_models.ClientInfoRequest) (*response_models.CheckoutSessionResponse, error)
	Advance(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error)
	EditClientInfo(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*response_models.PaymentHandleResponse, error)
	ConfirmPayment(ctx context.Context, sessionID string, request request_models.ConfirmPaymentRequest) (*response_models.OrderCreatedResponse, error)
}

type CheckoutService struct {
	activities providers.ActivitiesProvider
	payments   providers.PaymentProvider
	orderRepo  repositories.OrderRepository
	sessions   mem.SessionStore
	sessionTTL time.Duration
}

func NewCheckoutService(
	activities providers.ActivitiesProvider,
	payments providers.PaymentProvider,
	orderRepo repositories.OrderRepository,
	sessions mem.SessionStore,
	sessionTTL time.Duration,
) CheckoutServiceInterface {
	return &CheckoutService{
		activities: activities,
		payments:   payments,
		orderRepo:  orderRepo,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// StartSession opens the shopping cart: it fetches the question sets for
// every activity, builds their answer trees and derives the step list. A
// failed fetch fails the whole start; an activity is never silently
// treated as having no questions.
func (s *CheckoutService) StartSession(ctx context.Context, request request_models.StartCheckoutRequest) (*response_models.CheckoutSessionResponse, error) {

	activities := make([]mem.SessionActivity, 0, len(request.Activities))
	trees := make([]checkout.AnswerTree, 0, len(request.Activities))

	for _, a := range request.Activities {
		sets, err := s.activities.FetchQuestionSets(ctx, a.ActivityID, a.RateID, a.PartySize)
		if err != nil {
			return nil, err
		}

		trees = append(trees, checkout.NewAnswerTree(sets.BookingQuestions, sets.ContactFields(), a.RateID, a.PartySize))
		activities = append(activities, mem.SessionActivity{
			ActivityID:     a.ActivityID,
			RateID:         a.RateID,
			PartySize:      a.PartySize,
			PickupRequired: a.PickupRequired,
			PickupLocation: a.PickupLocation,
		})
	}

	session := &mem.CheckoutSession{
		ID:         uuid.New().String(),
		Activities: activities,
		Sequencer:  checkout.NewSequencer(trees),
		DraftSlot:  -1,
	}
	s.sessions.Put(session, s.sessionTTL)

	return s.sessionResponse(session), nil
}

func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionResponse(session), nil
}

// SetAnswer applies one booking or main-traveler answer change. Other
// travelers go through the draft/commit pair instead.
func (s *CheckoutService) SetAnswer(ctx context.Context, sessionID string, request request_models.SetAnswerRequest) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return nil, err
	}

	tree, ok := session.Sequencer.Tree(request.ActivityIndex)
	if !ok {
		return nil, utils.ErrInvalidInput
	}

	switch request.Section {
	case request_models.SectionBooking:
		tree = tree.SetBookingAnswer(request.QuestionID, request.Value)
	case request_models.SectionMainTraveler:
		tree = tree.SetMainTravelerAnswer(request.QuestionID, request.Value)
	default:
		return nil, utils.ErrInvalidInput
	}

	session.Sequencer.SetTree(request.ActivityIndex, tree)
	s.sessions.Put(session, s.sessionTTL)
	return s.sessionResponse(session), nil
}

// StageDraft stages one value in the transient traveler draft. Nothing
// reaches the tree until the slot is committed.
func (s *CheckoutService) StageDraft(ctx context.Context, sessionID string, request request_models.StageDraftRequest) error {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return err
	}
	if _, ok := session.Sequencer.Tree(request.ActivityIndex); !ok {
		return utils.ErrInvalidInput
	}

	session.Draft = session.Draft.Set(request.QuestionID, request.Value)
	s.sessions.Put(session, s.sessionTTL)
	return nil
}

// OpenSlotDraft starts editing a traveler slot. A non-negative slot
// reopens a filled traveler with their committed answers; a negative slot
// is the "add next traveler" affordance and starts blank.
func (s *CheckoutService) OpenSlotDraft(ctx context.Context, sessionID string, activityIndex int, slot int) (*response_models.DraftResponse, error) {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return nil, err
	}
	tree, ok := session.Sequencer.Tree(activityIndex)
	if !ok {
		return nil, utils.ErrInvalidInput
	}

	if slot >= 0 {
		if slot >= len(tree.OtherTravelerAnswers) {
			return nil, utils.ErrInvalidInput
		}
		session.Draft = tree.DraftFromSlot(slot)
	} else {
		session.Draft = checkout.Draft{}
	}
	session.DraftSlot = slot
	s.sessions.Put(session, s.sessionTTL)

	return &response_models.DraftResponse{SlotIndex: slot, Draft: session.Draft}, nil
}

// CommitSlot merges the draft into a traveler slot and discards the
// draft. Without an explicit slot index the commit targets the slot the
// draft was opened for, which for the add affordance means the first
// unfilled slot.
func (s *CheckoutService) CommitSlot(ctx context.Context, sessionID string, request request_models.CommitSlotRequest) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return nil, err
	}
	tree, ok := session.Sequencer.Tree(request.ActivityIndex)
	if !ok {
		return nil, utils.ErrInvalidInput
	}

	slot := session.DraftSlot
	if request.SlotIndex != nil {
		slot = *request.SlotIndex
	}

	tree = tree.CommitSlot(slot, session.Draft)
	session.Sequencer.SetTree(request.ActivityIndex, tree)
	session.Draft = nil
	session.DraftSlot = -1
	s.sessions.Put(session, s.sessionTTL)

	return s.sessionResponse(session), nil
}

// UpdateClientInfo saves the client-info form and billing identity.
// Saving is unvalidated so partial input survives; the rules are applied
// when the guest tries to advance, and echoed back for live display.
func (s *CheckoutService) UpdateClientInfo(ctx context.Context, sessionID string, request request_models.ClientInfoRequest) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return nil, err
	}

	form := checkout.ClientInfoForm{
		Email:               request.Email,
		PurchasingAsCompany: request.PurchasingAsCompany,
		CompanyName:         request.CompanyName,
		VATNumber:           request.VATNumber,
		Notes:               request.Notes,
	}

	var billing *checkout.BillingIdentity
	if request.Billing != nil {
		billing = &checkout.BillingIdentity{
			Name:  request.Billing.Name,
			Email: request.Billing.Email,
			Phone: request.Billing.Phone,
			Address: checkout.BillingAddress{
				Line1:      request.Billing.Line1,
				Line2:      request.Billing.Line2,
				City:       request.Billing.City,
				State:      request.Billing.State,
				PostalCode: request.Billing.PostalCode,
				Country:    request.Billing.Country,
			},
		}
	}

	session.Sequencer.SetClientInfo(form, billing)
	s.sessions.Put(session, s.sessionTTL)
	return s.sessionResponse(session), nil
}

func (s *CheckoutService) Advance(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Sequencer.Advance(); err != nil {
		return nil, err
	}
	s.sessions.Put(session, s.sessionTTL)
	return s.sessionResponse(session), nil
}

// EditClientInfo jumps back to the client-info step from any later
// step. All answer trees stay populated. Once the reservation has been
// submitted the jump is refused so the handle stays in sync with the
// payload sent upstream.
func (s *CheckoutService) EditClientInfo(ctx context.Context, sessionID string) (*response_models.CheckoutSessionResponse, error) {
	session, err := s.mutableSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Sequencer.EditClientInfo(); err != nil {
		return nil, err
	}
	s.sessions.Put(session, s.sessionTTL)
	return s.sessionResponse(session), nil
}

// Submit serializes the committed answer trees into the upstream booking
// payload, creates the order locally and returns the payment handle.
// Re-submitting an already submitted session returns the existing handle.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (*response_models.PaymentHandleResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Sequencer.Paying() {
		return nil, utils.ErrNotAtPayment
	}
	if session.Handle != nil {
		return handleResponse(session.Handle), nil
	}

	form, billing := session.Sequencer.ClientInfo()
	if billing == nil {
		return nil, utils.ErrClientInfoIncomplete
	}

	payload := s.buildPayload(session, form, *billing)
	handle, err := s.activities.SubmitBooking(ctx, payload)
	if err != nil {
		return nil, err
	}

	accessCode, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, err
	}
	codeHash, err := utils.HashAccessCode(accessCode)
	if err != nil {
		return nil, err
	}

	order := &dbm.Order{
		ReferenceCode:  referenceCode(),
		GuestName:      billing.Name,
		GuestEmail:     guestEmail(form, *billing),
		Status:         dbm.OrderStatusPending,
		AmountMinor:    handle.AmountMinor,
		Currency:       strings.ToUpper(handle.Currency),
		CompanyName:    form.CompanyName,
		VATNumber:      form.VATNumber,
		Notes:          form.Notes,
		AccessCodeHash: codeHash,
	}

	reservations := make([]dbm.Reservation, 0, len(payload.Activities))
	for _, a := range payload.Activities {
		answerJSON, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, dbm.Reservation{
			ActivityID:     a.ActivityID,
			RateID:         a.RateID,
			PartySize:      a.PartySize,
			PickupRequired: a.PickupRequired,
			PickupLocation: a.PickupLocation,
			AnswerPayload:  answerJSON,
		})
	}

	txn := &dbm.Transaction{
		AmountMinor:   handle.AmountMinor,
		Currency:      strings.ToUpper(handle.Currency),
		Status:        dbm.TxnStatusPending,
		Provider:      "stripe",
		ProviderTxnID: handle.PaymentRef,
	}

	if err := s.orderRepo.CreateOrderWithReservations(ctx, order, reservations, txn); err != nil {
		log.Printf("Failed to persist order for session %s: %v", sessionID, err)
		return nil, utils.ErrDatabaseError
	}

	session.Handle = handle
	session.OrderID = order.ID
	session.ReferenceCode = order.ReferenceCode
	session.AccessCode = accessCode
	s.sessions.Put(session, s.sessionTTL)

	return handleResponse(handle), nil
}

// ConfirmPayment runs the processor confirmation. A decline keeps the
// session at the payment step and passes the processor's message through
// untouched; success tears the session down and hands the guest their
// order access credentials.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, sessionID string, request request_models.ConfirmPaymentRequest) (*response_models.OrderCreatedResponse, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Sequencer.Paying() {
		return nil, utils.ErrNotAtPayment
	}
	if session.Handle == nil {
		return nil, utils.ErrPaymentHandleMissing
	}

	if err := s.payments.Confirm(ctx, session.Handle.PaymentRef, request.PaymentMethodRef); err != nil {
		if markErr := s.orderRepo.MarkPaymentFailed(ctx, session.OrderID, err.Error()); markErr != nil {
			log.Printf("Failed to record declined payment for order %s: %v", session.OrderID, markErr)
		}
		return nil, err
	}

	if err := s.orderRepo.MarkPaymentSucceeded(ctx, session.OrderID, request.PaymentMethodRef); err != nil {
		log.Printf("Failed to record successful payment for order %s: %v", session.OrderID, err)
		return nil, utils.ErrDatabaseError
	}

	guestToken, err := utils.CreateGuestToken(session.OrderID)
	if err != nil {
		return nil, err
	}

	out := &response_models.OrderCreatedResponse{
		OrderID:       session.OrderID.String(),
		ReferenceCode: session.ReferenceCode,
		AccessCode:    session.AccessCode,
		GuestToken:    guestToken,
	}

	s.sessions.Delete(session.ID)
	return out, nil
}

func (s *CheckoutService) session(sessionID string) (*mem.CheckoutSession, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

// mutableSession is session plus the submission lock: once the booking
// payload has gone upstream and a payment handle exists, answers and
// client info are frozen so the handle always matches what was sent.
func (s *CheckoutService) mutableSession(sessionID string) (*mem.CheckoutSession, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Handle != nil {
		return nil, utils.ErrAlreadySubmitted
	}
	return session, nil
}

func (s *CheckoutService) sessionResponse(session *mem.CheckoutSession) *response_models.CheckoutSessionResponse {
	seq := session.Sequencer

	activities := make([]response_models.ActivityTreeResponse, 0, len(session.Activities))
	for i, a := range session.Activities {
		tree, _ := seq.Tree(i)
		activities = append(activities, response_models.ActivityTreeResponse{
			ActivityID:  a.ActivityID,
			Tree:        tree,
			Report:      checkout.Check(tree),
			SlotStates:  tree.SlotStates(),
			FilledSlots: tree.FilledSlotCount(),
		})
	}

	form, billing := seq.ClientInfo()
	return &response_models.CheckoutSessionResponse{
		SessionID:        session.ID,
		CurrentStep:      seq.Current(),
		Steps:            seq.Steps(),
		Activities:       activities,
		ClientInfoErrors: checkout.ValidateClientInfo(form, billing),
	}
}

func (s *CheckoutService) buildPayload(session *mem.CheckoutSession, form checkout.ClientInfoForm, billing checkout.BillingIdentity) *providers.BookingPayload {
	payload := &providers.BookingPayload{
		Billing:     billing,
		Email:       guestEmail(form, billing),
		CompanyName: form.CompanyName,
		VATNumber:   form.VATNumber,
		Notes:       form.Notes,
	}
	for i, a := range session.Activities {
		tree, _ := session.Sequencer.Tree(i)
		booking := providers.ActivityBooking{
			ActivityID:          a.ActivityID,
			RateID:              a.RateID,
			PartySize:           a.PartySize,
			PickupRequired:      a.PickupRequired,
			PickupLocation:      a.PickupLocation,
			BookingAnswers:      submittedAnswers(tree.BookingAnswers),
			MainTravelerAnswers: submittedAnswers(tree.MainTravelerAnswers),
		}
		for _, slot := range tree.OtherTravelerAnswers {
			booking.OtherTravelerAnswers = append(booking.OtherTravelerAnswers, submittedAnswers(slot))
		}
		payload.Activities = append(payload.Activities, booking)
	}
	return payload
}

func submittedAnswers(answers []checkout.AnsweredQuestion) []providers.SubmittedAnswer {
	out := make([]providers.SubmittedAnswer, 0, len(answers))
	for _, q := range answers {
		out = append(out, providers.SubmittedAnswer{QuestionID: q.ID, Value: q.Value})
	}
	return out
}

func handleResponse(handle *providers.PaymentHandle) *response_models.PaymentHandleResponse {
	return &response_models.PaymentHandleResponse{
		PaymentRef:   handle.PaymentRef,
		AmountMinor:  handle.AmountMinor,
		Currency:     handle.Currency,
		ClientSecret: handle.ClientSecret,
	}
}

func guestEmail(form checkout.ClientInfoForm, billing checkout.BillingIdentity) string {
	if form.Email != "" {
		return form.Email
	}
	return billing.Email
}

func referenceCode() string {
	code, err := utils.GenerateSecureToken(4)
	if err != nil {
		code = uuid.New().String()[:8]
	}
	return "TD-" + strings.ToUpper(code)
}
