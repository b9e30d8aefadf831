package main

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/wichananm65/artisan-storefront/internal/admin"
	"github.com/wichananm65/artisan-storefront/internal/backend"
	"github.com/wichananm65/artisan-storefront/internal/cart"
	"github.com/wichananm65/artisan-storefront/internal/checkout"
	"github.com/wichananm65/artisan-storefront/internal/config"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/payment"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/session"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	repo, closeRepo := mustOpenStorage(cfg)
	defer closeRepo()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	setupCORS(app, cfg.CORSOrigins)

	secure := strings.HasPrefix(cfg.PublicURL, "https://")
	app.Use(storage.ClientMiddleware(secure))

	api := backend.New(cfg.BackendURL, cfg.BackendTimeout)

	cartService := cart.NewService(repo, api, cfg.ShippingFee)
	cartCount := func(c *fiber.Ctx) int {
		return cartService.Count(c.UserContext(), storage.ClientID(c))
	}

	gateway := payment.NewRazorpay(api, payment.Options{
		KeyID:       cfg.RazorpayKeyID,
		StoreName:   cfg.StoreName,
		CallbackURL: cfg.PublicURL + "/checkout/payment",
	})
	if cfg.RazorpayKeyID == "" {
		log.Warnf("RAZORPAY_KEY_ID is not set, online payments are unavailable")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warnf("SESSION_SECRET is not set, admin sessions will not survive a restart")
	}
	gate := session.NewGate(api, session.Options{
		Secret:    secret,
		AuthURL:   cfg.AuthURL,
		PublicURL: cfg.PublicURL,
		Secure:    secure,
	})

	product.NewHandler(product.NewService(api), cfg.PublicURL, cartCount).RegisterPublicRoutes(app)
	cart.NewHandler(cartService).RegisterPublicRoutes(app)
	checkout.NewHandler(checkout.NewFlow(cartService, api, gateway, repo)).RegisterPublicRoutes(app)
	order.NewHandler(order.NewService(api)).RegisterPublicRoutes(app)

	session.NewHandler(gate).RegisterPublicRoutes(app)
	admin.NewHandler(admin.NewService(api)).RegisterProtectedRoutes(app, gate.RequireAuth())

	log.Infof("storefront listening on %s (backend %s, storage %s)", cfg.Addr, cfg.BackendURL, cfg.StorageDriver)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Session-ID",
	}))
}

// mustOpenStorage picks the visitor storage backend. Memory is the default
// and the fallback when the driver is unknown.
func mustOpenStorage(cfg config.Config) (storage.Repository, func()) {
	switch cfg.StorageDriver {
	case "postgres":
		db := mustOpenDB(cfg.DatabaseURL)
		repo := storage.NewPostgresRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			panic(err)
		}
		return repo, func() { db.Close() }
	case "redis":
		client := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			panic(err)
		}
		return storage.NewRedisRepository(client, cfg.StorageTTL), func() { client.Close() }
	case "memory":
	default:
		log.Warnf("unknown STORAGE_DRIVER %q, using memory", cfg.StorageDriver)
	}
	return storage.NewInMemoryRepository(), func() {}
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
