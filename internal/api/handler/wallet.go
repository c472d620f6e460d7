// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"walletledger/internal/api/types"
	"walletledger/internal/domain"
	"walletledger/internal/service"
	"walletledger/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service service.WalletService
	logger  *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *WalletHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *WalletHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrWalletNotFound):
		statusCode = http.StatusNotFound
		message = "Wallet not found"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusBadRequest
		message = "Insufficient funds"
	case util.IsError(err, util.ErrInvalidAmount), util.IsError(err, util.ErrInvalidOperation):
		statusCode = http.StatusUnprocessableEntity
		message = err.Error()
	case util.IsError(err, util.ErrStorageUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = "Service temporarily unavailable"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// walletID extracts and validates the wallet id path parameter. An
// unparseable id cannot resolve to a wallet, so it reports not-found.
func walletID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "walletID"))
	if err != nil {
		return uuid.Nil, util.ErrWalletNotFound
	}
	return id, nil
}

func walletResponse(wallet *domain.Wallet, includeUpdatedAt bool) types.WalletResponse {
	resp := types.WalletResponse{
		WalletID:  wallet.ID.String(),
		Balance:   wallet.Balance,
		CreatedAt: wallet.CreatedAt,
	}
	if includeUpdatedAt {
		updatedAt := wallet.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// CreateWallet handles the create wallet request.
// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.CreateWallet(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, walletResponse(wallet, false))
}

// GetWallet handles the get wallet request.
// GET /api/v1/wallets/{walletID}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, walletResponse(wallet, true))
}

// ListWallets handles the list wallets request.
// GET /api/v1/wallets?offset=&limit=
func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = service.DefaultListLimit
	}

	wallets, total, err := h.service.ListWallets(r.Context(), offset, limit)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	items := make([]types.WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, walletResponse(&wallets[i], true))
	}

	h.respondWithJSON(w, http.StatusOK, types.WalletsListResponse{
		Wallets: items,
		Total:   total,
	})
}

// OperationRequest represents the request body for a balance operation.
type OperationRequest struct {
	OperationType string          `json:"operation_type"`
	Amount        decimal.Decimal `json:"amount"`
}

// ApplyOperation handles a deposit or withdrawal request.
// POST /api/v1/wallets/{walletID}/operation
func (h *WalletHandler) ApplyOperation(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req OperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidAmount)
		return
	}

	// Basic validation; the service re-checks and fails closed regardless.
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		h.respondWithError(w, util.ErrInvalidAmount)
		return
	}
	opType := domain.TransactionType(req.OperationType)
	if !opType.Valid() {
		h.respondWithError(w, util.ErrInvalidOperation)
		return
	}

	wallet, transaction, err := h.service.ApplyOperation(r.Context(), id, opType, req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.OperationResponse{
		Status:        "Successful",
		WalletID:      wallet.ID.String(),
		TransactionID: transaction.ID.String(),
		NewBalance:    wallet.Balance,
	})
}

// GetTransactionHistory handles the get transaction history request.
// GET /api/v1/wallets/{walletID}/transactions
func (h *WalletHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	id, err := walletID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.service.GetTransactionHistory(r.Context(), id, limit, offset)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}
