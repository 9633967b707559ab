package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
)

// StatusChecker is the slice of the gateway the poller needs.
type StatusChecker interface {
	Status(ctx context.Context, billID string) (payment.StatusResponse, error)
}

// PollResult classifies how a confirmation poll ended.
type PollResult string

const (
	PollSuccess   PollResult = "success"
	PollFailure   PollResult = "failure"
	PollRefunded  PollResult = "refunded"
	PollTimeout   PollResult = "timeout"
	PollCancelled PollResult = "cancelled"
)

// PollOutcome is the single terminal event a poll produces.
type PollOutcome struct {
	Result  PollResult
	Message string
}

// Poller repeatedly queries payment status for a bill until a terminal
// status, cancellation or the wall-clock timeout.
type Poller struct {
	checker  StatusChecker
	interval time.Duration
	timeout  time.Duration
}

func NewPoller(checker StatusChecker, interval, timeout time.Duration) *Poller {
	return &Poller{checker: checker, interval: interval, timeout: timeout}
}

// Poll issues a status query immediately and then at each interval boundary.
// Individual query errors are non-terminal and simply wait for the next
// tick. A set token stops the loop before the next query and suppresses the
// outcome: the caller has already handled the cancellation and must hear
// nothing further from this poll.
func (p *Poller) Poll(ctx context.Context, billID string, tok *CancelToken) PollOutcome {
	deadline := time.Now().Add(p.timeout)

	for {
		if tok.Cancelled() {
			return PollOutcome{Result: PollCancelled}
		}

		resp, err := p.checker.Status(ctx, billID)

		if tok.Cancelled() {
			// the response arrived after the user backed out; drop it
			return PollOutcome{Result: PollCancelled}
		}
		if err != nil {
			slog.Warn("payment_status_query_failed", "bill_id", billID, "error", err)
		} else {
			switch {
			case resp.Status.IsSuccess():
				return PollOutcome{Result: PollSuccess}
			case resp.Status.IsRefund():
				return PollOutcome{Result: PollRefunded, Message: messageOr(resp.Message, "le paiement a été remboursé")}
			case resp.Status.IsFailure():
				return PollOutcome{Result: PollFailure, Message: messageOr(resp.Message, "le paiement a échoué")}
			}
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return PollOutcome{Result: PollTimeout}
		}
		wait := p.interval
		if remaining < wait {
			wait = remaining
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return PollOutcome{Result: PollCancelled}
		}
		if time.Until(deadline) <= 0 {
			return PollOutcome{Result: PollTimeout}
		}
	}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
