package checkout

import (
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/commune"
)

// VerifyStatus is the tri-state outcome of the WhatsApp phone check.
type VerifyStatus string

const (
	VerifyUnknown     VerifyStatus = "unknown"
	VerifyChecking    VerifyStatus = "checking"
	VerifyVerified    VerifyStatus = "verified"
	VerifyUnreachable VerifyStatus = "unreachable"
)

// GateInput is everything the validation gate looks at.
type GateInput struct {
	Address           DeliveryAddress
	PhoneVerification VerifyStatus
	Zone              *commune.Commune
	Selection         *PaymentSelection
	PhoneFormatError  string
}

// GateResult says whether the submit action may fire and, when it may not,
// why. Reasons are ordered by priority; CallToAction is the first of them
// and is what the submit button displays. An empty CallToAction means the
// form is submittable.
type GateResult struct {
	CanSubmit    bool     `json:"canSubmit"`
	Reasons      []string `json:"reasons,omitempty"`
	CallToAction string   `json:"callToAction,omitempty"`
}

// EvaluateGate recomputes the submit gate from plain data. It never touches
// the network; the phone-verification result is an input, produced by the
// verifier beforehand.
func EvaluateGate(in GateInput) GateResult {
	var reasons []string

	if !in.Address.Complete() {
		reasons = append(reasons, "compléter l'adresse de livraison")
	}
	switch in.PhoneVerification {
	case VerifyChecking:
		reasons = append(reasons, "vérification du numéro WhatsApp en cours")
	case VerifyVerified:
		// ok
	default:
		reasons = append(reasons, "numéro WhatsApp non vérifié")
	}
	if in.Zone == nil {
		reasons = append(reasons, "choisir une commune de livraison")
	}
	if in.Selection == nil {
		reasons = append(reasons, "choisir un mode de paiement")
	} else if in.PhoneFormatError != "" {
		reasons = append(reasons, in.PhoneFormatError)
	}

	if len(reasons) > 0 {
		return GateResult{Reasons: reasons, CallToAction: reasons[0]}
	}
	return GateResult{CanSubmit: true}
}
