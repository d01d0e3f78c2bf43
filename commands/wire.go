package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abhisheksh99/Food-Delivery-App-v2/cache"
	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	controller "github.com/abhisheksh99/Food-Delivery-App-v2/controllers"
	"github.com/abhisheksh99/Food-Delivery-App-v2/events"
	"github.com/abhisheksh99/Food-Delivery-App-v2/helper"
	"github.com/abhisheksh99/Food-Delivery-App-v2/mailer"
	"github.com/abhisheksh99/Food-Delivery-App-v2/media"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
	"github.com/abhisheksh99/Food-Delivery-App-v2/payment"
	"github.com/abhisheksh99/Food-Delivery-App-v2/repository"
	"github.com/abhisheksh99/Food-Delivery-App-v2/routes"
	"github.com/abhisheksh99/Food-Delivery-App-v2/services"
	"github.com/abhisheksh99/Food-Delivery-App-v2/tracking"
)

const imageFolder = "food-delivery"

// api is the assembled HTTP handler plus the connections it owns.
type api struct {
	handler http.Handler
	closers []io.Closer
}

func (a *api) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildAPI(ctx context.Context, cfg *config.Config, db *mongo.Database) (*api, error) {
	a := &api{}

	users := repository.NewUserRepository(db)
	restaurants := repository.NewRestaurantRepository(db)
	menus := repository.NewMenuRepository(db)
	orders := repository.NewOrderRepository(db)

	uploader, err := newUploader(cfg)
	if err != nil {
		return nil, err
	}
	ledger, redisClient := newLedger(ctx, cfg)
	if redisClient != nil {
		a.closers = append(a.closers, redisClient)
	}

	hub := tracking.NewHub(cfg.FrontendURL)
	notifier := events.Fanout{hub}
	if len(cfg.KafkaBrokers) > 0 {
		writer := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		a.closers = append(a.closers, writer)
		notifier = append(notifier, events.NewKafkaPublisher(writer))
	} else {
		notifier = append(notifier, events.LogNotifier{})
	}

	tokens := helper.NewTokenManager(cfg.JWTSecret)

	authService := services.NewAuthService(users, uploader, newMailer(cfg), cfg.FrontendURL)
	restaurantService := services.NewRestaurantService(restaurants, menus, orders, uploader, notifier)
	menuService := services.NewMenuService(restaurants, menus, uploader)
	checkoutService := services.NewCheckoutService(restaurants, menus, orders, newGateway(cfg), services.CheckoutOptions{
		Currency:       cfg.Currency,
		FrontendURL:    cfg.FrontendURL,
		PaymentTimeout: cfg.PaymentTimeout,
	})
	webhookService := services.NewWebhookService(payment.NewStripeWebhookVerifier(cfg.WebhookSecret), orders, ledger, notifier)

	router := routes.NewRouter(routes.Handlers{
		Users:       controller.NewUserController(authService, tokens),
		Restaurants: controller.NewRestaurantController(restaurantService),
		Menus:       controller.NewMenuController(menuService),
		Orders:      controller.NewOrderController(checkoutService, webhookService, hub),
	}, routes.Guards{
		Authenticated: middleware.Authentication(tokens),
		Admin:         middleware.RequireAdmin(users),
	})

	a.handler = newCORS(cfg).Handler(router)
	return a, nil
}

func newCORS(cfg *config.Config) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
}

func newUploader(cfg *config.Config) (services.ImageUploader, error) {
	if cfg.CloudinaryURL == "" {
		slog.Warn("CLOUDINARY_URL not set, image uploads will fail")
		return media.Unconfigured{}, nil
	}
	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, imageFolder)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return uploader, nil
}

func newMailer(cfg *config.Config) services.Mailer {
	if cfg.SendGridAPIKey == "" || cfg.MailFromAddress == "" {
		return mailer.LogMailer{}
	}
	return mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromAddress, cfg.MailFromName)
}

func newGateway(cfg *config.Config) services.PaymentGateway {
	if cfg.StripeSecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
		return payment.Unconfigured{}
	}
	return payment.NewStripeGateway(cfg.StripeSecretKey)
}

// newLedger falls back to the no-op ledger when Redis is unset or unreachable.
func newLedger(ctx context.Context, cfg *config.Config) (services.EventLedger, *redis.Client) {
	if cfg.RedisAddr == "" {
		return cache.NoopLedger{}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, webhook deduplication relies on order status only", "addr", cfg.RedisAddr, "error", err)
		client.Close()
		return cache.NoopLedger{}, nil
	}
	return cache.NewProcessedEvents(client, cfg.ProcessedEventTTL), client
}
