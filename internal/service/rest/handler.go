package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/service/order"
)

// Handler обслуживает HTTP API сервиса заказов.
type Handler struct {
	orders order.Service
	reads  domain.OrderRepository
	logger *log.Entry
}

// NewHandler создаёт handler поверх workflow создания и репозитория чтения.
func NewHandler(orders order.Service, reads domain.OrderRepository, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "rest-handler")
	}
	return &Handler{
		orders: orders,
		reads:  reads,
		logger: logger,
	}
}

// CreateOrder принимает запрос на заказ и прогоняет его через workflow.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.orders.CreateOrder(r.Context(), req.CustomerID, toRequestedLines(req.Lines))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

// GetOrderByID возвращает сохранённый заказ по его ID.
func (h *Handler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}

	found, err := h.reads.Get(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order_not_found", err.Error())
			return
		}
		h.logger.WithError(err).Error("failed to load order")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(found))
}

// ListCustomerOrders возвращает заказы клиента, свежие первыми.
func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id_required", "")
		return
	}

	found, err := h.reads.ListByCustomer(customerID, 100)
	if err != nil {
		h.logger.WithError(err).Error("failed to list orders")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	out := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeDomainError переводит доменные ошибки в HTTP-статусы.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuantityInvalid):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, "empty_order", err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient_stock", err.Error())
	default:
		h.logger.WithError(err).Error("order creation failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
