package main

import (
	"database/sql"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/checkout"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/commune"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/config"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/order"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/payment"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/transaction"
	"github.com/EbenEzer-MOMBO/marche241-v2-sub000/internal/whatsapp"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustMigrate(db)

	app := fiber.New()
	setupCORS(app)

	communeService := commune.NewService(commune.NewPostgresRepository(db))
	communeHandler := commune.NewHandler(communeService)

	orderService := order.NewService(order.NewPostgresRepository(db))
	orderHandler := order.NewHandler(orderService)

	transactionService := transaction.NewService(transaction.NewPostgresRepository(db))
	transactionHandler := transaction.NewHandler(transactionService)

	gateway := payment.NewHTTPGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey)
	verifier := checkout.NewVerifier(whatsapp.NewClient(cfg.WhatsAppAPIURL), config.PhoneDebounce)
	orchestrator := checkout.New(orderService, gateway, transactionService)
	checkoutHandler := checkout.NewHandler(orchestrator, verifier, communeService)

	communeHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)

	// everything registered below requires an admin token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	communeHandler.RegisterProtectedRoutes(app)
	transactionHandler.RegisterProtectedRoutes(app)

	slog.Info("server_starting", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		slog.Error("server_stopped", "error", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func mustMigrate(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS communes (
		"communeId" SERIAL PRIMARY KEY,
		"boutiqueId" INT NOT NULL,
		name TEXT NOT NULL,
		"deliveryFee" INT NOT NULL DEFAULT 0,
		"etaMinDays" INT NOT NULL DEFAULT 0,
		"etaMaxDays" INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		"createdAt" TIMESTAMPTZ NOT NULL,
		"updatedAt" TIMESTAMPTZ NOT NULL
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
		"orderId" SERIAL PRIMARY KEY,
		"orderNumber" TEXT NOT NULL UNIQUE,
		"boutiqueId" INT NOT NULL,
		"customerName" TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT,
		commune TEXT,
		instructions TEXT,
		items jsonb NOT NULL DEFAULT '[]',
		subtotal INT NOT NULL DEFAULT 0,
		"deliveryFee" INT NOT NULL DEFAULT 0,
		taxes INT NOT NULL DEFAULT 0,
		discount INT NOT NULL DEFAULT 0,
		total INT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		"createdAt" TIMESTAMPTZ NOT NULL,
		"updatedAt" TIMESTAMPTZ NOT NULL
	)`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS transactions (
		"transactionId" SERIAL PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		"orderId" INT NOT NULL,
		amount INT NOT NULL DEFAULT 0,
		operator TEXT NOT NULL,
		"paymentType" TEXT NOT NULL,
		phone TEXT NOT NULL,
		"operatorReference" TEXT,
		note TEXT,
		status TEXT NOT NULL,
		"createdAt" TIMESTAMPTZ NOT NULL
	)`); err != nil {
		panic(err)
	}
}
