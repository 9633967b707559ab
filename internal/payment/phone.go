package payment

import (
	"fmt"
	"strings"
)

// localNumberLength is the length of a local mobile number: a two-digit
// operator prefix followed by seven digits.
const localNumberLength = 9

// ValidatePhone checks a local mobile number against the selected operator's
// format. It returns an empty string when the number is valid, otherwise a
// human-readable reason suitable for display next to the payment form.
func ValidatePhone(op Operator, phone string) string {
	if !op.IsValid() {
		return "opérateur de paiement inconnu"
	}
	digits := strings.TrimSpace(phone)
	if digits == "" {
		return "numéro de paiement requis"
	}
	if len(digits) != localNumberLength || !isDigits(digits) {
		return fmt.Sprintf("le numéro doit contenir %d chiffres", localNumberLength)
	}
	prefix := operatorPrefixes[op]
	if !strings.HasPrefix(digits, prefix) {
		label := "Airtel Money"
		if op == OperatorMoov {
			label = "Moov Money"
		}
		return fmt.Sprintf("un numéro %s commence par %s", label, prefix)
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
