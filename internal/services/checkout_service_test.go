package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/checkout"
	dbm "tripdesk/internal/models/db_models"
	"tripdesk/internal/models/request_models"
	"tripdesk/internal/providers"
	mem "tripdesk/pkg/memcache"
	"tripdesk/pkg/utils"
)

type fakeActivities struct {
	sets      *providers.QuestionSets
	fetchErr  error
	submitErr error
	handle    *providers.PaymentHandle
	submitted *providers.BookingPayload
}

func (f *fakeActivities) FetchQuestionSets(ctx context.Context, activityID, rateID string, partySize int) (*providers.QuestionSets, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.sets, nil
}

func (f *fakeActivities) SubmitBooking(ctx context.Context, payload *providers.BookingPayload) (*providers.PaymentHandle, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = payload
	return f.handle, nil
}

type fakePayments struct {
	confirmErr error
	confirms   int
}

func (f *fakePayments) Confirm(ctx context.Context, paymentRef, paymentMethodRef string) error {
	f.confirms++
	return f.confirmErr
}

type fakeOrderRepo struct {
	order        *dbm.Order
	reservations []dbm.Reservation
	txn          *dbm.Transaction
	succeeded    bool
	failed       bool
	failureMsg   string
}

func (f *fakeOrderRepo) CreateOrderWithReservations(ctx context.Context, order *dbm.Order, reservations []dbm.Reservation, txn *dbm.Transaction) error {
	order.ID = uuid.New()
	f.order = order
	f.reservations = reservations
	f.txn = txn
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*dbm.Order, error) {
	if f.order != nil && f.order.ID.String() == orderID {
		return f.order, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) MarkPaymentSucceeded(ctx context.Context, orderID uuid.UUID, paymentMethodRef string) error {
	f.succeeded = true
	return nil
}

func (f *fakeOrderRepo) MarkPaymentFailed(ctx context.Context, orderID uuid.UUID, failureMessage string) error {
	f.failed = true
	f.failureMsg = failureMessage
	return nil
}

func questionSets() *providers.QuestionSets {
	nationality := checkout.QuestionSpec{
		ID: "nationality", Label: "Nationality", DataType: checkout.DataTypeShortText,
		Context: checkout.ContextPassenger, Required: true,
	}
	firstName := checkout.QuestionSpec{
		ID: "first_name", Label: "First name", DataType: checkout.DataTypeShortText,
		Context: checkout.ContextPassenger, Required: true,
	}
	dietary := checkout.QuestionSpec{
		ID: "dietary", Label: "Dietary requirements", DataType: checkout.DataTypeLongText,
		Context: checkout.ContextBooking,
	}
	return &providers.QuestionSets{
		BookingQuestions:        []checkout.QuestionSpec{dietary},
		MainTravelerInfoFields:  []checkout.QuestionSpec{nationality},
		OtherTravelerInfoFields: []checkout.QuestionSpec{firstName},
	}
}

func newTestService(activities *fakeActivities, payments *fakePayments, repo *fakeOrderRepo) (CheckoutServiceInterface, mem.SessionStore) {
	store := mem.NewCheckoutSessions()
	svc := NewCheckoutService(activities, payments, repo, store, time.Hour)
	return svc, store
}

func startRequest() request_models.StartCheckoutRequest {
	return request_models.StartCheckoutRequest{
		Activities: []request_models.CheckoutActivity{
			{ActivityID: "act-1", RateID: "standard", PartySize: 2},
		},
	}
}

func clientInfoRequest() request_models.ClientInfoRequest {
	return request_models.ClientInfoRequest{
		Email: "jane@example.com",
		Billing: &request_models.BillingIdentityRequest{
			Name:       "Jane Doe",
			Line1:      "Hauptstr. 1",
			City:       "Berlin",
			PostalCode: "10115",
			Country:    "DE",
		},
	}
}

func TestStartSession_BuildsStepsAndTrees(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})

	resp, err := svc.StartSession(context.Background(), startRequest())
	require.NoError(t, err)

	assert.Equal(t, checkout.StepClientInfo, resp.CurrentStep.Kind)
	require.Len(t, resp.Steps, 3)
	require.Len(t, resp.Activities, 1)
	assert.Len(t, resp.Activities[0].Tree.OtherTravelerAnswers, 1)
	assert.False(t, resp.Activities[0].Report.Complete)
	assert.Equal(t, 0, resp.Activities[0].FilledSlots)
}

func TestStartSession_FetchFailureBlocks(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{fetchErr: utils.ErrSpecFetchFailed}, &fakePayments{}, &fakeOrderRepo{})

	_, err := svc.StartSession(context.Background(), startRequest())
	assert.ErrorIs(t, err, utils.ErrSpecFetchFailed, "a failed fetch is never treated as zero questions")
}

func TestCheckoutFlow_AdvanceGuards(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	id := started.SessionID

	// client info not provided yet
	_, err = svc.Advance(ctx, id)
	assert.ErrorIs(t, err, utils.ErrClientInfoIncomplete)

	_, err = svc.UpdateClientInfo(ctx, id, clientInfoRequest())
	require.NoError(t, err)

	resp, err := svc.Advance(ctx, id)
	require.NoError(t, err)
	require.Equal(t, checkout.StepBookingQuestions, resp.CurrentStep.Kind)

	// required questions still open
	_, err = svc.Advance(ctx, id)
	assert.ErrorIs(t, err, utils.ErrQuestionsIncomplete)

	_, err = svc.SetAnswer(ctx, id, request_models.SetAnswerRequest{
		Section: request_models.SectionMainTraveler, QuestionID: "nationality", Value: "DE",
	})
	require.NoError(t, err)

	// the other-traveler slot is still untouched
	_, err = svc.Advance(ctx, id)
	assert.ErrorIs(t, err, utils.ErrQuestionsIncomplete)

	require.NoError(t, svc.StageDraft(ctx, id, request_models.StageDraftRequest{QuestionID: "first_name", Value: "Jane"}))
	_, err = svc.CommitSlot(ctx, id, request_models.CommitSlotRequest{})
	require.NoError(t, err)

	resp, err = svc.Advance(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepPaying, resp.CurrentStep.Kind)
}

func TestSlotDraftRoundTrip(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})
	ctx := context.Background()

	started, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	id := started.SessionID

	require.NoError(t, svc.StageDraft(ctx, id, request_models.StageDraftRequest{QuestionID: "first_name", Value: "Jane"}))
	resp, err := svc.CommitSlot(ctx, id, request_models.CommitSlotRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Activities[0].FilledSlots)

	// reopening the committed slot repopulates the draft with its values
	draft, err := svc.OpenSlotDraft(ctx, id, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, checkout.Draft{"first_name": "Jane"}, draft.Draft)

	// the add affordance starts blank
	draft, err = svc.OpenSlotDraft(ctx, id, 0, -1)
	require.NoError(t, err)
	assert.Empty(t, draft.Draft)
}

func paidSession(t *testing.T, svc CheckoutServiceInterface) string {
	t.Helper()
	ctx := context.Background()

	started, err := svc.StartSession(ctx, startRequest())
	require.NoError(t, err)
	id := started.SessionID

	_, err = svc.UpdateClientInfo(ctx, id, clientInfoRequest())
	require.NoError(t, err)
	_, err = svc.Advance(ctx, id)
	require.NoError(t, err)

	_, err = svc.SetAnswer(ctx, id, request_models.SetAnswerRequest{
		Section: request_models.SectionMainTraveler, QuestionID: "nationality", Value: "DE",
	})
	require.NoError(t, err)
	require.NoError(t, svc.StageDraft(ctx, id, request_models.StageDraftRequest{QuestionID: "first_name", Value: "Jane"}))
	_, err = svc.CommitSlot(ctx, id, request_models.CommitSlotRequest{})
	require.NoError(t, err)

	resp, err := svc.Advance(ctx, id)
	require.NoError(t, err)
	require.Equal(t, checkout.StepPaying, resp.CurrentStep.Kind)
	return id
}

func TestSubmit_CreatesOrderAndReturnsHandle(t *testing.T) {
	activities := &fakeActivities{
		sets: questionSets(),
		handle: &providers.PaymentHandle{
			PaymentRef: "pi_123", AmountMinor: 12900, Currency: "eur", ClientSecret: "pi_123_secret",
		},
	}
	repo := &fakeOrderRepo{}
	svc, _ := newTestService(activities, &fakePayments{}, repo)
	id := paidSession(t, svc)

	handle, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", handle.PaymentRef)
	assert.Equal(t, int64(12900), handle.AmountMinor)

	require.NotNil(t, repo.order)
	assert.Equal(t, dbm.OrderStatusPending, repo.order.Status)
	assert.Equal(t, "EUR", repo.order.Currency)
	assert.NotEmpty(t, repo.order.AccessCodeHash)
	require.Len(t, repo.reservations, 1)
	assert.Equal(t, "act-1", repo.reservations[0].ActivityID)
	require.NotNil(t, repo.txn)
	assert.Equal(t, dbm.TxnStatusPending, repo.txn.Status)
	assert.Equal(t, "pi_123", repo.txn.ProviderTxnID)

	// the submitted payload carries every section of every tree
	require.NotNil(t, activities.submitted)
	require.Len(t, activities.submitted.Activities, 1)
	submitted := activities.submitted.Activities[0]
	assert.Equal(t, []providers.SubmittedAnswer{{QuestionID: "dietary", Value: ""}}, submitted.BookingAnswers)
	assert.Equal(t, []providers.SubmittedAnswer{{QuestionID: "nationality", Value: "DE"}}, submitted.MainTravelerAnswers)
	require.Len(t, submitted.OtherTravelerAnswers, 1)
	assert.Equal(t, []providers.SubmittedAnswer{{QuestionID: "first_name", Value: "Jane"}}, submitted.OtherTravelerAnswers[0])

	// resubmitting returns the same handle without a second booking
	again, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, handle, again)
}

func TestSubmit_BeforePaymentStep(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})
	started, err := svc.StartSession(context.Background(), startRequest())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), started.SessionID)
	assert.ErrorIs(t, err, utils.ErrNotAtPayment)
}

func TestConfirmPayment_DeclineIsVerbatimAndKeepsSession(t *testing.T) {
	activities := &fakeActivities{
		sets:   questionSets(),
		handle: &providers.PaymentHandle{PaymentRef: "pi_123", AmountMinor: 5000, Currency: "eur", ClientSecret: "sec"},
	}
	payments := &fakePayments{confirmErr: &utils.PaymentDeclinedError{Message: "Your card was declined."}}
	repo := &fakeOrderRepo{}
	svc, store := newTestService(activities, payments, repo)
	id := paidSession(t, svc)

	_, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), id, request_models.ConfirmPaymentRequest{PaymentMethodRef: "pm_1"})
	require.Error(t, err)
	assert.Equal(t, "Your card was declined.", err.Error())

	assert.True(t, repo.failed)
	assert.Equal(t, "Your card was declined.", repo.failureMsg)
	assert.False(t, repo.succeeded)

	// the session survives, still at the payment step, for a retry
	session, ok := store.Get(id)
	require.True(t, ok)
	assert.True(t, session.Sequencer.Paying())
}

func TestConfirmPayment_SuccessTearsDownSession(t *testing.T) {
	activities := &fakeActivities{
		sets:   questionSets(),
		handle: &providers.PaymentHandle{PaymentRef: "pi_123", AmountMinor: 5000, Currency: "eur", ClientSecret: "sec"},
	}
	repo := &fakeOrderRepo{}
	svc, store := newTestService(activities, &fakePayments{}, repo)
	id := paidSession(t, svc)

	_, err := svc.Submit(context.Background(), id)
	require.NoError(t, err)

	order, err := svc.ConfirmPayment(context.Background(), id, request_models.ConfirmPaymentRequest{PaymentMethodRef: "pm_1"})
	require.NoError(t, err)

	assert.Equal(t, repo.order.ID.String(), order.OrderID)
	assert.NotEmpty(t, order.ReferenceCode)
	assert.NotEmpty(t, order.AccessCode)
	assert.NotEmpty(t, order.GuestToken)
	assert.True(t, repo.succeeded)

	_, ok := store.Get(id)
	assert.False(t, ok, "successful checkout tears the session down")
}

func TestConfirmPayment_WithoutSubmit(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})
	id := paidSession(t, svc)

	_, err := svc.ConfirmPayment(context.Background(), id, request_models.ConfirmPaymentRequest{PaymentMethodRef: "pm_1"})
	assert.ErrorIs(t, err, utils.ErrPaymentHandleMissing)
}

func TestEditClientInfo_FromPaying(t *testing.T) {
	svc, _ := newTestService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{})
	id := paidSession(t, svc)

	resp, err := svc.EditClientInfo(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepClientInfo, resp.CurrentStep.Kind)

	// everything already answered is still there
	assert.True(t, resp.Activities[0].Report.Complete)
}

func TestSubmittedSessionIsLocked(t *testing.T) {
	activities := &fakeActivities{
		sets: questionSets(),
		handle: &providers.PaymentHandle{
			PaymentRef: "pi_123", AmountMinor: 12900, Currency: "eur", ClientSecret: "pi_123_secret",
		},
	}
	svc, _ := newTestService(activities, &fakePayments{}, &fakeOrderRepo{})
	ctx := context.Background()
	id := paidSession(t, svc)

	_, err := svc.Submit(ctx, id)
	require.NoError(t, err)

	// the payload went upstream, so nothing that feeds it may change
	_, err = svc.EditClientInfo(ctx, id)
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)
	_, err = svc.SetAnswer(ctx, id, request_models.SetAnswerRequest{
		Section: request_models.SectionMainTraveler, QuestionID: "nationality", Value: "FR",
	})
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)
	err = svc.StageDraft(ctx, id, request_models.StageDraftRequest{QuestionID: "first_name", Value: "John"})
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)
	_, err = svc.CommitSlot(ctx, id, request_models.CommitSlotRequest{})
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)
	_, err = svc.UpdateClientInfo(ctx, id, clientInfoRequest())
	assert.ErrorIs(t, err, utils.ErrAlreadySubmitted)

	// retrying the payment on the locked session still works
	handle, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pi_123", handle.PaymentRef)
}

func TestSessionExpiry(t *testing.T) {
	store := mem.NewCheckoutSessions()
	svc := NewCheckoutService(&fakeActivities{sets: questionSets()}, &fakePayments{}, &fakeOrderRepo{}, store, -time.Second)

	started, err := svc.StartSession(context.Background(), startRequest())
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), started.SessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}
