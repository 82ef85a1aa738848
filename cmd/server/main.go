package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ZairBalam/soundshop/internal/cart"
	"github.com/ZairBalam/soundshop/internal/catalog"
	"github.com/ZairBalam/soundshop/internal/checkout"
	"github.com/ZairBalam/soundshop/internal/config"
	"github.com/ZairBalam/soundshop/internal/events"
	"github.com/ZairBalam/soundshop/internal/httpserver"
	"github.com/ZairBalam/soundshop/internal/identity"
	"github.com/ZairBalam/soundshop/internal/logging"
	loggingmw "github.com/ZairBalam/soundshop/internal/middleware/logging"
	"github.com/ZairBalam/soundshop/internal/order"
	"github.com/ZairBalam/soundshop/internal/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("store open: %v", err)
	}

	cat, err := catalog.New()
	if err != nil {
		log.Fatalf("catalog load: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	engine := cart.NewEngine(st)
	identities := identity.NewLedger(st)
	orders := order.NewLedger(st)
	checkoutSvc := &checkout.Service{
		Cart:   engine,
		Orders: orders,
		Events: producer,
		Delay:  cfg.CheckoutDelay,
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Catalog: cat},
		CartHandler:    &httpserver.CartHTTP{Cart: engine, Catalog: cat, Events: producer},
		AuthHandler:    &httpserver.AuthHTTP{Ledger: identities, Events: producer},
		OrderHandler:   &httpserver.OrderHTTP{Checkout: checkoutSvc, Orders: orders},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()
	_ = st.Close()

	log.Printf("%s stopped", cfg.ServiceName)
}
