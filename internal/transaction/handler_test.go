package transaction

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
)

const testSecret = "test-secret"

type stubRepo struct {
	txs []Transaction
}

func (r *stubRepo) Create(tx Transaction) (Transaction, error) {
	tx.TransactionID = len(r.txs) + 1
	r.txs = append(r.txs, tx)
	return tx, nil
}

func (r *stubRepo) ListByOrder(orderID int) ([]Transaction, error) {
	out := []Transaction{}
	for _, tx := range r.txs {
		if tx.OrderID == orderID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func makeProtectedApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(jwtware.New(jwtware.Config{SigningKey: []byte(testSecret)}))
	h.RegisterProtectedRoutes(app)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestTransactionRoutes_RequireToken(t *testing.T) {
	repo := &stubRepo{}
	handler := NewHandler(NewService(repo))
	app := makeProtectedApp(handler)

	req := httptest.NewRequest("GET", "/api/v1/orders/42/transactions", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestTransactionRoutes_ListByOrder(t *testing.T) {
	repo := &stubRepo{}
	service := NewService(repo)
	if _, err := service.CreatePending(Transaction{
		OrderID:           42,
		Amount:            1045,
		Operator:          payment.OperatorAirtel,
		PaymentType:       payment.TypeDeliveryOnly,
		Phone:             "074123456",
		OperatorReference: "BILL-1",
	}); err != nil {
		t.Fatalf("seeding transaction: %v", err)
	}
	handler := NewHandler(service)
	app := makeProtectedApp(handler)

	req := httptest.NewRequest("GET", "/api/v1/orders/42/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with token, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"amount":1045`) {
		t.Fatalf("expected transaction in response, got %s", string(b))
	}
	if !strings.Contains(string(b), "TXN-") {
		t.Fatalf("expected generated reference, got %s", string(b))
	}
}
