package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/config"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
)

// State is the checkout session state. Exactly one is active at a time; the
// transition table below is the only way to move between them, so stale
// combinations (a countdown with no pending bill, a progress bar on an idle
// form) cannot be expressed.
type State string

const (
	StateIdle                 State = "idle"
	StateSubmitting           State = "submitting"
	StateInitiatingPayment    State = "initiating_payment"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
	StateCancelled            State = "cancelled"
)

var legalTransitions = map[State][]State{
	StateIdle:                 {StateSubmitting},
	StateSubmitting:           {StateInitiatingPayment, StateFailed},
	StateInitiatingPayment:    {StateAwaitingConfirmation, StateFailed},
	StateAwaitingConfirmation: {StateSucceeded, StateFailed, StateCancelled},
	StateFailed:               {StateIdle},
	StateCancelled:            {StateIdle},
}

func canTransition(from, to State) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Session tracks one checkout attempt from submission to its terminal
// outcome. All mutation goes through the transition method.
type Session struct {
	mu           sync.Mutex
	id           string
	boutiqueSlug string
	state        State
	orderID      int
	orderNumber  string
	billID       string
	paymentType  payment.Type
	errMsg       string
	redirectURL  string
	pollDeadline time.Time
	createdAt    time.Time
	token        *CancelToken
}

// SessionView is the UI-facing snapshot of a session. PollDeadline feeds the
// confirmation countdown; RedirectURL appears once the post-success delay
// has elapsed.
type SessionView struct {
	ID           string       `json:"id"`
	State        State        `json:"state"`
	OrderNumber  string       `json:"orderNumber,omitempty"`
	PaymentType  payment.Type `json:"paymentType,omitempty"`
	Error        string       `json:"error,omitempty"`
	RedirectURL  string       `json:"redirectUrl,omitempty"`
	PollDeadline string       `json:"pollDeadline,omitempty"`
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View returns a consistent snapshot of the session.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := SessionView{
		ID:          s.id,
		State:       s.state,
		OrderNumber: s.orderNumber,
		PaymentType: s.paymentType,
		Error:       s.errMsg,
		RedirectURL: s.redirectURL,
	}
	if !s.pollDeadline.IsZero() && s.state == StateAwaitingConfirmation {
		v.PollDeadline = s.pollDeadline.UTC().Format(time.RFC3339)
	}
	return v
}

// transition moves the session to a new state, applying extra mutations
// atomically with the state change. Illegal moves are refused and logged,
// never applied.
func (s *Session) transition(to State, apply func(*Session)) bool {
	s.mu.Lock()
	from := s.state
	if !canTransition(from, to) {
		s.mu.Unlock()
		slog.Warn("checkout_transition_refused", "session_id", s.id, "from", from, "to", to)
		return false
	}
	s.state = to
	if apply != nil {
		apply(s)
	}
	s.mu.Unlock()

	slog.Info("checkout_transition", "session_id", s.id, "from", from, "to", to)
	return true
}

// SessionStore provides thread-safe storage for checkout sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Save(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.id] = s
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GateError reports a submission refused by the validation gate.
type GateError struct {
	Result GateResult
}

func (e *GateError) Error() string {
	return e.Result.CallToAction
}

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = fmt.Errorf("checkout session not found")

// ErrNotAwaitingConfirmation is returned when cancel arrives outside the
// confirmation wait.
var ErrNotAwaitingConfirmation = fmt.Errorf("session is not awaiting confirmation")

const timeoutMessage = "le paiement est toujours en attente. Vérifiez votre téléphone ou contactez le support"

// Orchestrator sequences one checkout attempt: order creation, payment
// initiation, ledger recording, then confirmation polling. It owns the
// session store the HTTP surface reads from.
type Orchestrator struct {
	orders        OrderCreator
	gateway       payment.Gateway
	ledger        LedgerRecorder
	poller        *Poller
	store         *SessionStore
	redirectDelay time.Duration
	errorDelay    time.Duration
}

// New creates an orchestrator with the default timing constants.
func New(orders OrderCreator, gateway payment.Gateway, ledger LedgerRecorder) *Orchestrator {
	return NewWithTiming(orders, gateway, ledger, Timing{
		PollInterval:  config.PollInterval,
		PollTimeout:   config.PollTimeout,
		RedirectDelay: config.SuccessRedirectDelay,
		ErrorDelay:    config.ErrorDisplayDelay,
	})
}

// Timing bundles the orchestrator's clocks so tests can shrink them.
type Timing struct {
	PollInterval  time.Duration
	PollTimeout   time.Duration
	RedirectDelay time.Duration
	ErrorDelay    time.Duration
}

func NewWithTiming(orders OrderCreator, gateway payment.Gateway, ledger LedgerRecorder, t Timing) *Orchestrator {
	return &Orchestrator{
		orders:        orders,
		gateway:       gateway,
		ledger:        ledger,
		poller:        NewPoller(gateway, t.PollInterval, t.PollTimeout),
		store:         NewSessionStore(),
		redirectDelay: t.RedirectDelay,
		errorDelay:    t.ErrorDelay,
	}
}

// Get returns the session for an id.
func (o *Orchestrator) Get(id string) (*Session, bool) {
	return o.store.Get(id)
}

// Submit gates and starts one checkout attempt. When the gate blocks, no
// session is created and the blocking reasons come back as a *GateError.
// Otherwise the pipeline runs in the background and the returned session is
// immediately readable.
func (o *Orchestrator) Submit(form Form, verification VerifyStatus) (*Session, error) {
	phoneFormatErr := ""
	if form.Selection != nil {
		phoneFormatErr = payment.ValidatePhone(form.Selection.Operator, form.Selection.Phone)
	}
	gate := EvaluateGate(GateInput{
		Address:           form.Address,
		PhoneVerification: verification,
		Zone:              form.Zone,
		Selection:         form.Selection,
		PhoneFormatError:  phoneFormatErr,
	})
	if !gate.CanSubmit {
		return nil, &GateError{Result: gate}
	}

	fees := ComputeFees(Subtotal(form.Lines), form.Zone, form.PayOnDelivery)

	sess := &Session{
		id:           uuid.NewString(),
		boutiqueSlug: form.BoutiqueSlug,
		state:        StateIdle,
		paymentType:  fees.PaymentType(),
		createdAt:    time.Now(),
		token:        NewCancelToken(),
	}
	sess.transition(StateSubmitting, nil)
	o.store.Save(sess)

	go o.run(sess, form, fees)
	return sess, nil
}

// Cancel aborts the confirmation wait of a session. The token is set before
// the state flips so the poll loop can never squeeze in another query, and
// the pipeline goroutine hears a suppressed outcome it must stay quiet
// about.
func (o *Orchestrator) Cancel(id string) error {
	sess, ok := o.store.Get(id)
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	if sess.state != StateAwaitingConfirmation {
		sess.mu.Unlock()
		return ErrNotAwaitingConfirmation
	}
	sess.token.Cancel()
	sess.state = StateCancelled
	orderNumber := sess.orderNumber
	sess.mu.Unlock()

	slog.Info("checkout_cancelled_by_user", "session_id", sess.id, "order_number", orderNumber)
	o.scheduleIdleReset(sess)
	return nil
}

func (o *Orchestrator) run(sess *Session, form Form, fees FeeBreakdown) {
	ctx := context.Background()

	ord, err := o.orders.Create(AssembleOrder(form, fees))
	if err != nil {
		o.fail(sess, err.Error())
		return
	}
	sess.transition(StateInitiatingPayment, func(s *Session) {
		s.orderID = ord.OrderID
		s.orderNumber = ord.OrderNumber
	})

	req, hook := BuildPaymentRequest(ord, form, fees)
	resp, err := o.gateway.Initiate(ctx, req, hook)
	if err != nil {
		o.fail(sess, err.Error())
		return
	}
	if !resp.Success {
		o.fail(sess, messageOr(resp.Message, "l'initiation du paiement a échoué"))
		return
	}

	// pending ledger row first: the payment may already be moving at the
	// operator, so a recording failure must not stop confirmation
	if _, err := o.ledger.CreatePending(BuildTransaction(ord, form, fees, resp.BillID)); err != nil {
		slog.Warn("transaction_recording_failed", "session_id", sess.id, "order_number", ord.OrderNumber, "bill_id", resp.BillID, "error", err)
	}

	deadline := time.Now().Add(o.poller.timeout)
	sess.transition(StateAwaitingConfirmation, func(s *Session) {
		s.billID = resp.BillID
		s.pollDeadline = deadline
	})

	outcome := o.poller.Poll(ctx, resp.BillID, sess.token)
	switch outcome.Result {
	case PollSuccess:
		o.succeed(sess)
	case PollFailure, PollRefunded:
		o.fail(sess, outcome.Message)
	case PollTimeout:
		o.fail(sess, timeoutMessage)
	case PollCancelled:
		// the cancel path already transitioned the session; say nothing
	}
}

func (o *Orchestrator) succeed(sess *Session) {
	if !sess.transition(StateSucceeded, nil) {
		return
	}
	sess.mu.Lock()
	url := fmt.Sprintf("/%s/confirmation?commande=%s&type=%s", sess.boutiqueSlug, sess.orderNumber, sess.paymentType)
	orderNumber := sess.orderNumber
	sess.mu.Unlock()

	slog.Info("checkout_succeeded", "session_id", sess.id, "order_number", orderNumber)
	time.AfterFunc(o.redirectDelay, func() {
		sess.mu.Lock()
		sess.redirectURL = url
		sess.mu.Unlock()
	})
}

func (o *Orchestrator) fail(sess *Session, msg string) {
	if !sess.transition(StateFailed, func(s *Session) { s.errMsg = msg }) {
		return
	}
	slog.Warn("checkout_failed", "session_id", sess.id, "reason", msg)
	o.scheduleIdleReset(sess)
}

// scheduleIdleReset re-enables the form after the terminal state has been
// on screen long enough to read.
func (o *Orchestrator) scheduleIdleReset(sess *Session) {
	time.AfterFunc(o.errorDelay, func() {
		sess.transition(StateIdle, func(s *Session) { s.errMsg = "" })
	})
}
