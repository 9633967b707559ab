package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/whatsapp"
)

const lookupCallTimeout = 10 * time.Second

// Verifier debounces WhatsApp reachability checks on the buyer's contact
// phone. Each input restarts the debounce window and supersedes any check
// still pending or in flight: results are applied only when their sequence
// number still matches the latest input, so a slow lookup can never
// overwrite the outcome of a newer one.
type Verifier struct {
	lookup   whatsapp.Lookuper
	debounce time.Duration

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	results map[string]verifyResult
}

type verifyResult struct {
	status  VerifyStatus
	message string
}

func NewVerifier(lookup whatsapp.Lookuper, debounce time.Duration) *Verifier {
	return &Verifier{
		lookup:   lookup,
		debounce: debounce,
		results:  make(map[string]verifyResult),
	}
}

// Input registers a changed phone number and schedules a debounced check.
// Callers only pass numbers that already satisfy basic local-format
// validation.
func (v *Verifier) Input(phone string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	seq := v.seq
	if v.timer != nil {
		v.timer.Stop()
	}
	v.results[phone] = verifyResult{status: VerifyChecking}
	v.timer = time.AfterFunc(v.debounce, func() {
		v.check(seq, phone)
	})
}

func (v *Verifier) check(seq uint64, phone string) {
	v.mu.Lock()
	if seq != v.seq {
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), lookupCallTimeout)
	defer cancel()
	res, err := v.lookup.Lookup(ctx, phone)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.seq {
		// superseded while the lookup was in flight
		return
	}
	switch {
	case err != nil:
		v.results[phone] = verifyResult{status: VerifyUnreachable, message: "vérification du numéro impossible, réessayez"}
	case !res.Exists:
		v.results[phone] = verifyResult{status: VerifyUnreachable, message: "ce numéro n'est pas enregistré sur WhatsApp"}
	default:
		v.results[phone] = verifyResult{status: VerifyVerified}
	}
}

// StatusFor returns the verification state of a number, with a display
// message when the number is unreachable.
func (v *Verifier) StatusFor(phone string) (VerifyStatus, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	r, ok := v.results[phone]
	if !ok {
		return VerifyUnknown, ""
	}
	return r.status, r.message
}
