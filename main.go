package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-hotelbooking/internal/auth"
	"ms-hotelbooking/internal/booking"
	"ms-hotelbooking/internal/booking/booking_api"
	booking_db "ms-hotelbooking/internal/booking/db"
	rediswrap "ms-hotelbooking/internal/booking/redis"
	"ms-hotelbooking/internal/cache"
	"ms-hotelbooking/internal/config"
	"ms-hotelbooking/internal/database/migrations"
	"ms-hotelbooking/internal/eligibility"
	"ms-hotelbooking/internal/hotels"
	hotels_db "ms-hotelbooking/internal/hotels/db"
	"ms-hotelbooking/internal/hotels/hotel_api"
	"ms-hotelbooking/internal/kafka"
	"ms-hotelbooking/internal/logger"
	"ms-hotelbooking/internal/tickets"
	ticket_db "ms-hotelbooking/internal/tickets/db"
	"ms-hotelbooking/internal/tickets/ticket_api"
)

func verifyConnections(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*bun.DB, *redis.Client) {
	dsn := cfg.Database.DSN
	if dsn == "" {
		logger.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	logger.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))

	return bunDB, redisClient
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Hotel Booking Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	logger.Info("APP", "Verifying database connections")
	bunDB, redisClient := verifyConnections(ctx, cfg, logger)
	defer bunDB.Close()
	defer redisClient.Close()

	if os.Getenv("AUTO_MIGRATE") != "false" {
		runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
		if err := runner.Run(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		logger.Info("DATABASE", "Migrations applied")
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Kafka.Brokers))
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.BookingCreated, cfg.Kafka.Topics.BookingMoved)
		defer producer.Close()

		requiredTopics := []string{
			cfg.Kafka.Topics.BookingCreated,
			cfg.Kafka.Topics.BookingMoved,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		logger.Warn("KAFKA", "Kafka disabled, booking events will not be published")
	}

	ticketsDB := &ticket_db.DB{Bun: bunDB}
	checker := eligibility.NewChecker(ticketsDB)

	bookingService := booking.NewBookingService(
		&booking_db.DB{Bun: bunDB},
		checker,
		rediswrap.NewRedis(redisClient, cfg.Booking.UserLockTTL),
		kafkaPublisher(producer),
	)
	hotelService := hotels.NewHotelService(
		&hotels_db.DB{Bun: bunDB},
		checker,
		cache.NewRedisCache(redisClient, cfg.Booking.HotelsCacheTTL),
	)
	ticketService := tickets.NewTicketService(ticketsDB)

	bookingHandler := booking_api.NewHandler(bookingService, logger)
	hotelHandler := hotel_api.NewHandler(hotelService, logger)
	ticketHandler := ticket_api.NewHandler(ticketService, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware())
		logger.Info("AUTH", "Bearer token middleware applied to protected API routes")

		r.Route("/api/hotel", func(r chi.Router) {
			r.Route("/booking", func(r chi.Router) {
				r.Get("/", bookingHandler.GetBooking)
				r.Post("/", bookingHandler.CreateBooking)
				r.Put("/{bookingId}", bookingHandler.UpdateBooking)
			})
			logger.Info("ROUTER", "Booking routes registered under /api/hotel/booking")

			r.Route("/hotels", func(r chi.Router) {
				r.Get("/", hotelHandler.ListHotels)
				r.Get("/{hotelId}", hotelHandler.GetHotel)
			})
			logger.Info("ROUTER", "Hotel routes registered under /api/hotel/hotels")

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/types", ticketHandler.GetTicketTypes)
				r.Get("/", ticketHandler.GetUserTicket)
			})
			logger.Info("ROUTER", "Ticket routes registered under /api/hotel/tickets")
		})
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Hotel Booking Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "Hotel Booking Service shutdown complete")
	}
}

// kafkaPublisher keeps a nil *kafka.Producer from turning into a non-nil
// interface inside the booking service.
func kafkaPublisher(p *kafka.Producer) booking.KafkaPublisher {
	if p == nil {
		return nil
	}
	return p
}
