// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"walletledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(walletHandler *handler.WalletHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Wallet API routes
	r.Route("/api/v1/wallets", func(r chi.Router) {
		r.Post("/", walletHandler.CreateWallet)
		r.Get("/", walletHandler.ListWallets)
		// Legacy route names, kept for wire compatibility with existing
		// clients.
		r.Post("/create_wallet", walletHandler.CreateWallet)
		r.Get("/get_wallets", walletHandler.ListWallets)
		r.Get("/{walletID}", walletHandler.GetWallet)
		r.Post("/{walletID}/operation", walletHandler.ApplyOperation)
		r.Get("/{walletID}/transactions", walletHandler.GetTransactionHistory)
	})

	return r
}
