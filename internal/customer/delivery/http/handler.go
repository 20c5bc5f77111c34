package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rasoilabs/pos-backend/internal/customer/domain"
	"github.com/rasoilabs/pos-backend/internal/customer/usecase/command"
	"github.com/rasoilabs/pos-backend/internal/customer/usecase/query"
	orderdomain "github.com/rasoilabs/pos-backend/internal/order/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
	"github.com/rasoilabs/pos-backend/pkg/logger"
)

// CustomerHandler handles HTTP requests for customer accounts
type CustomerHandler struct {
	createHandler *command.CreateCustomerHandler
	updateHandler *command.UpdateCustomerHandler
	lookupHandler *query.LookupCustomerHandler
	listHandler   *query.ListCustomersHandler
	statsHandler  *query.GetStatsHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers domain.CustomerRepository, orders orderdomain.OrderRepository) *CustomerHandler {
	return &CustomerHandler{
		createHandler: command.NewCreateCustomerHandler(customers),
		updateHandler: command.NewUpdateCustomerHandler(customers),
		lookupHandler: query.NewLookupCustomerHandler(customers),
		listHandler:   query.NewListCustomersHandler(customers),
		statsHandler:  query.NewGetStatsHandler(customers, orders),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/customers", h.GetCustomers).Methods("GET")
	router.HandleFunc("/api/customers", h.CreateCustomer).Methods("POST")
	router.HandleFunc("/api/customers/{id}", h.UpdateCustomer).Methods("PATCH")
	router.HandleFunc("/api/customers/{id}/stats", h.GetStats).Methods("GET")
}

// GetCustomers handles GET /api/customers with an optional phone lookup
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	if phone != "" {
		customer, err := h.lookupHandler.Handle(query.LookupCustomerQuery{Phone: phone})
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to look up customer")
			respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch customer"})
			return
		}

		// A miss is 200 with a null customer so the terminal can offer to register
		respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"customer": customer}})
		return
	}

	customers, err := h.listHandler.Handle(query.ListCustomersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list customers")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch customers"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{"customers": customers}})
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Name        string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	customer, err := h.createHandler.Handle(command.CreateCustomerCommand{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to create customer")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create customer"})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "Customer created successfully", Data: map[string]interface{}{"customer": customer}})
}

// UpdateCustomer handles PATCH /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid customer ID"})
		return
	}

	var req struct {
		Name           *string  `json:"name"`
		AdvanceBalance *float64 `json:"advance_balance"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	customer, err := h.updateHandler.Handle(command.UpdateCustomerCommand{
		ID:             uint(id),
		Name:           req.Name,
		AdvanceBalance: req.AdvanceBalance,
	})
	if err != nil {
		if apperror.IsInvalid(err) {
			respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to update customer")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to update customer"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Customer updated successfully", Data: map[string]interface{}{"customer": customer}})
}

// GetStats handles GET /api/customers/{id}/stats
func (h *CustomerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid customer ID"})
		return
	}

	stats, err := h.statsHandler.Handle(query.GetStatsQuery{CustomerID: uint(id)})
	if err != nil {
		if err.Error() == "customer not found" {
			respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Customer not found"})
			return
		}
		logger.Error(r.Context()).Err(err).Msg("Failed to fetch customer stats")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch customer statistics"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
