package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/order"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/transaction"
)

// fakeOrders records order creation calls.
type fakeOrders struct {
	mu     sync.Mutex
	err    error
	calls  int
	lastIn order.CreateRequest
}

func (f *fakeOrders) Create(req order.CreateRequest) (order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastIn = req
	if f.err != nil {
		return order.Order{}, f.err
	}
	return order.Order{
		OrderID:     42,
		OrderNumber: "CMD-TEST0001",
		BoutiqueID:  req.BoutiqueID,
		Commune:     req.Commune,
		DeliveryFee: req.DeliveryFee,
		Taxes:       req.Taxes,
	}, nil
}

func (f *fakeOrders) lastRequest() order.CreateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastIn
}

// fakeGateway scripts initiation and status answers.
type fakeGateway struct {
	mu          sync.Mutex
	initResp    payment.InitiateResponse
	initErr     error
	initCalls   int
	lastHook    payment.WebhookPayload
	statuses    []payment.StatusResponse
	statusIdx   int
	statusCalls int
}

func (f *fakeGateway) Initiate(ctx context.Context, req payment.InitiateRequest, hook payment.WebhookPayload) (payment.InitiateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	f.lastHook = hook
	return f.initResp, f.initErr
}

func (f *fakeGateway) Status(ctx context.Context, billID string) (payment.StatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	i := f.statusIdx
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.statusIdx++
	return f.statuses[i], nil
}

func (f *fakeGateway) initiations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initCalls
}

func (f *fakeGateway) statusQueries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

// fakeLedger records pending transactions.
type fakeLedger struct {
	mu      sync.Mutex
	err     error
	created []transaction.Transaction
}

func (f *fakeLedger) CreatePending(tx transaction.Transaction) (transaction.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return transaction.Transaction{}, f.err
	}
	tx.TransactionID = len(f.created) + 1
	f.created = append(f.created, tx)
	return tx, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeLedger) first() transaction.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[0]
}

func (f *fakeGateway) hook() payment.WebhookPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastHook
}

func testTiming() Timing {
	return Timing{
		PollInterval:  10 * time.Millisecond,
		PollTimeout:   500 * time.Millisecond,
		RedirectDelay: 20 * time.Millisecond,
		ErrorDelay:    100 * time.Millisecond,
	}
}

func validForm() Form {
	return Form{
		BoutiqueID:   7,
		BoutiqueSlug: "chez-mariam",
		Email:        "client@example.com",
		Lines: []CartLine{
			{ProductID: 1, Name: "Pagne wax", UnitPrice: 5000, Quantity: 2},
		},
		Address: DeliveryAddress{
			FullName: "Jean Ndong",
			Phone:    "074123456",
			Street:   "Quartier Louis, rue 12",
		},
		Zone:      zoneWithFee(1000),
		Selection: &PaymentSelection{Operator: payment.OperatorAirtel, Phone: "074123456"},
	}
}

func paidGateway() *fakeGateway {
	return &fakeGateway{
		initResp: payment.InitiateResponse{Success: true, BillID: "BILL-1"},
		statuses: []payment.StatusResponse{
			{Status: payment.StatusPending},
			{Status: payment.StatusPaid},
		},
	}
}

func waitForState(t *testing.T, sess *Session, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return sess.View().State == want
	}, 2*time.Second, 2*time.Millisecond, "waiting for state %s", want)
}

func TestSubmit_GateBlocksInvalidForm(t *testing.T) {
	orch := NewWithTiming(&fakeOrders{}, paidGateway(), &fakeLedger{}, testTiming())

	form := validForm()
	form.Selection = nil
	sess, err := orch.Submit(form, VerifyVerified)

	require.Nil(t, sess)
	var gateErr *GateError
	require.ErrorAs(t, err, &gateErr)
	assert.False(t, gateErr.Result.CanSubmit)
	assert.Equal(t, "choisir un mode de paiement", gateErr.Result.CallToAction)
}

func TestSubmit_FullPipelineToSuccess(t *testing.T) {
	orders := &fakeOrders{}
	gateway := paidGateway()
	ledger := &fakeLedger{}
	orch := NewWithTiming(orders, gateway, ledger, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateSucceeded)

	// order request carried the computed fees: round(11000*0.045)=495
	req1 := orders.lastRequest()
	assert.Equal(t, 1000, req1.DeliveryFee)
	assert.Equal(t, 495, req1.Taxes)
	assert.Equal(t, 0, req1.Discount)

	// one pending ledger row, written before confirmation resolved
	require.Equal(t, 1, ledger.count())
	tx := ledger.first()
	assert.Equal(t, 42, tx.OrderID)
	assert.Equal(t, 11495, tx.Amount)
	assert.Equal(t, "BILL-1", tx.OperatorReference)
	assert.Equal(t, payment.TypeFull, tx.PaymentType)

	// the audit snapshot references the same order
	assert.Equal(t, "CMD-TEST0001", gateway.hook().OrderNumber)

	// redirect appears after the post-success delay, tagged complet
	require.Eventually(t, func() bool {
		return sess.View().RedirectURL != ""
	}, time.Second, 2*time.Millisecond)
	assert.Equal(t, "/chez-mariam/confirmation?commande=CMD-TEST0001&type=complet", sess.View().RedirectURL)
}

func TestSubmit_PayOnDeliveryChargesFeesOnly(t *testing.T) {
	orders := &fakeOrders{}
	gateway := paidGateway()
	ledger := &fakeLedger{}
	orch := NewWithTiming(orders, gateway, ledger, testTiming())

	form := validForm()
	form.PayOnDelivery = true
	sess, err := orch.Submit(form, VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateSucceeded)

	// round(1000*0.045)=45, due now 1045, subtotal stays due on delivery
	require.Equal(t, 1, ledger.count())
	assert.Equal(t, 1045, ledger.first().Amount)
	assert.Equal(t, payment.TypeDeliveryOnly, ledger.first().PaymentType)
	assert.Equal(t, 45, orders.lastRequest().Taxes)

	require.Eventually(t, func() bool {
		return sess.View().RedirectURL != ""
	}, time.Second, 2*time.Millisecond)
	assert.Contains(t, sess.View().RedirectURL, "type=partiel")
}

func TestSubmit_OrderCreationFailureStopsBeforePayment(t *testing.T) {
	orders := &fakeOrders{err: errors.New("boutique fermée")}
	gateway := paidGateway()
	ledger := &fakeLedger{}
	orch := NewWithTiming(orders, gateway, ledger, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateFailed)
	assert.Equal(t, "boutique fermée", sess.View().Error)
	assert.Equal(t, 0, gateway.initiations(), "no payment may be attempted")
	assert.Equal(t, 0, ledger.count(), "no transaction may be recorded")

	// the form is re-enabled after the display delay
	waitForState(t, sess, StateIdle)
}

func TestSubmit_GatewayRejectionLeavesNoLedgerRow(t *testing.T) {
	gateway := paidGateway()
	gateway.initResp = payment.InitiateResponse{Success: false, Message: "opérateur indisponible"}
	ledger := &fakeLedger{}
	orch := NewWithTiming(&fakeOrders{}, gateway, ledger, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateFailed)
	assert.Equal(t, "opérateur indisponible", sess.View().Error)
	assert.Equal(t, 0, ledger.count())
	assert.Equal(t, 0, gateway.statusQueries(), "no poll without a bill")
}

func TestSubmit_LedgerFailureDoesNotAbortPolling(t *testing.T) {
	gateway := paidGateway()
	ledger := &fakeLedger{err: errors.New("ledger down")}
	orch := NewWithTiming(&fakeOrders{}, gateway, ledger, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateSucceeded)
	assert.Greater(t, gateway.statusQueries(), 0)
}

func TestSubmit_PollFailureFailsSession(t *testing.T) {
	gateway := paidGateway()
	gateway.statuses = []payment.StatusResponse{{Status: payment.StatusFailed, Message: "solde insuffisant"}}
	orch := NewWithTiming(&fakeOrders{}, gateway, &fakeLedger{}, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateFailed)
	assert.Equal(t, "solde insuffisant", sess.View().Error)
}

func TestSubmit_PollTimeoutInvitesSupport(t *testing.T) {
	gateway := paidGateway()
	gateway.statuses = []payment.StatusResponse{{Status: payment.StatusPending}}
	timing := testTiming()
	timing.PollTimeout = 40 * time.Millisecond
	orch := NewWithTiming(&fakeOrders{}, gateway, &fakeLedger{}, timing)

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateFailed)
	assert.Contains(t, sess.View().Error, "support")
}

func TestCancel_DuringConfirmationWait(t *testing.T) {
	gateway := paidGateway()
	gateway.statuses = []payment.StatusResponse{{Status: payment.StatusPending}}
	orch := NewWithTiming(&fakeOrders{}, gateway, &fakeLedger{}, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)

	waitForState(t, sess, StateAwaitingConfirmation)
	require.NoError(t, orch.Cancel(sess.ID()))

	assert.Equal(t, StateCancelled, sess.View().State)
	assert.Empty(t, sess.View().Error, "cancellation is not an error")

	issued := gateway.statusQueries()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, issued, gateway.statusQueries(), "no status query after cancel")

	waitForState(t, sess, StateIdle)
}

func TestCancel_OutsideConfirmationWaitIsRefused(t *testing.T) {
	gateway := paidGateway()
	orch := NewWithTiming(&fakeOrders{}, gateway, &fakeLedger{}, testTiming())

	sess, err := orch.Submit(validForm(), VerifyVerified)
	require.NoError(t, err)
	waitForState(t, sess, StateSucceeded)

	assert.ErrorIs(t, orch.Cancel(sess.ID()), ErrNotAwaitingConfirmation)
	assert.ErrorIs(t, orch.Cancel("no-such-session"), ErrSessionNotFound)
}

func TestSession_IllegalTransitionRefused(t *testing.T) {
	sess := &Session{id: "s1", state: StateIdle, token: NewCancelToken()}

	assert.False(t, sess.transition(StateAwaitingConfirmation, nil))
	assert.Equal(t, StateIdle, sess.View().State)

	assert.True(t, sess.transition(StateSubmitting, nil))
	assert.False(t, sess.transition(StateSucceeded, nil))
}
