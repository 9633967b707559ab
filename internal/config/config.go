package config

import (
	"os"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr              string
	DatabaseURL       string
	JWTSecret         string
	PaymentGatewayURL string
	PaymentGatewayKey string
	WhatsAppAPIURL    string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Config{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PaymentGatewayURL: os.Getenv("PAYMENT_GATEWAY_URL"),
		PaymentGatewayKey: os.Getenv("PAYMENT_GATEWAY_KEY"),
		WhatsAppAPIURL:    os.Getenv("WHATSAPP_API_URL"),
	}
}

const (
	// TransactionFeeRate is the platform convenience charge applied to the
	// amount collected at checkout.
	TransactionFeeRate = 0.045

	// PhoneDebounce is how long the phone verifier waits after the last
	// change before issuing a WhatsApp lookup.
	PhoneDebounce = 500 * time.Millisecond

	// PollInterval is the delay between consecutive payment status queries.
	PollInterval = 5 * time.Second

	// PollTimeout is the wall-clock budget for payment confirmation.
	PollTimeout = 60 * time.Second

	// SuccessRedirectDelay is how long a confirmed checkout keeps its
	// success state visible before the redirect URL is published.
	SuccessRedirectDelay = 2 * time.Second

	// ErrorDisplayDelay is how long a failed or cancelled checkout keeps its
	// terminal state visible before the session returns to idle.
	ErrorDisplayDelay = 3 * time.Second
)
