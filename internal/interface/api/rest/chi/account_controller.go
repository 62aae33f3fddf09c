package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/KretovDmitry/bank-account/internal/application/interfaces"
	"github.com/KretovDmitry/bank-account/internal/application/params"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/interface/api/rest/header"
	"github.com/KretovDmitry/bank-account/internal/interface/api/rest/request"
	"github.com/KretovDmitry/bank-account/internal/interface/api/rest/response"
	"github.com/go-chi/chi/v5"
)

type AccountController struct {
	service interfaces.AccountService
}

// NewAccountController registers http.Handlers with additional options.
func NewAccountController(service interfaces.AccountService, options ChiServerOptions) chi.Router {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	c := AccountController{
		service: service,
	}

	r.Group(func(r chi.Router) {
		for _, middleware := range options.Middlewares {
			r.Use(middleware)
		}
		r.Post(options.BaseURL+"/accounts", c.Open)
		r.Get(options.BaseURL+"/accounts/{number}", c.GetAccount)
		r.Post(options.BaseURL+"/accounts/{number}/deposit", c.Deposit)
		r.Post(options.BaseURL+"/accounts/{number}/withdraw", c.Withdraw)
		r.Get(options.BaseURL+"/accounts/{number}/operations", c.GetOperations)
		r.Post(options.BaseURL+"/account-numbers", c.GenerateAccountNumber)
	})

	return r
}

// Open account (POST /api/accounts HTTP/1.1).
func (c *AccountController) Open(w http.ResponseWriter, r *http.Request) {
	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		c.ErrorHandlerFunc(w, r, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest))
		return
	}

	// Read, decode and close request body.
	defer r.Body.Close()

	var payload request.OpenAccount

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.ErrorHandlerFunc(w, r, checkJSONDecodeError(err))
		return
	}

	account, err := c.service.Open(r.Context(), &params.OpenAccount{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		NationalID: payload.NationalID,
		Balance:    payload.Balance,
	})
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	// Status 201 Created.
	writeJSON(w, http.StatusCreated, response.NewAccount(account))
}

// Get account (GET /api/accounts/{number} HTTP/1.1).
func (c *AccountController) GetAccount(w http.ResponseWriter, r *http.Request) {
	number, err := entities.NewAccountNumber(chi.URLParam(r, "number"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	account, err := c.service.GetAccount(r.Context(), number)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response.NewAccount(account))
}

// Deposit (POST /api/accounts/{number}/deposit HTTP/1.1).
func (c *AccountController) Deposit(w http.ResponseWriter, r *http.Request) {
	params, err := c.operationParams(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	outcome, err := c.service.Deposit(r.Context(), params)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response.NewOutcome(outcome))
}

// Withdraw (POST /api/accounts/{number}/withdraw HTTP/1.1).
func (c *AccountController) Withdraw(w http.ResponseWriter, r *http.Request) {
	params, err := c.operationParams(r)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	outcome, err := c.service.Withdraw(r.Context(), params)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	// Status 402 Payment Required when the balance does not cover the sum.
	code := http.StatusOK
	if !outcome.Succeeded() {
		code = http.StatusPaymentRequired
	}

	writeJSON(w, code, response.NewOutcome(outcome))
}

// Get account history (GET /api/accounts/{number}/operations HTTP/1.1).
func (c *AccountController) GetOperations(w http.ResponseWriter, r *http.Request) {
	number, err := entities.NewAccountNumber(chi.URLParam(r, "number"))
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	operations, err := c.service.GetOperations(r.Context(), number)
	if err != nil {
		c.ErrorHandlerFunc(w, r, err)
		return
	}

	// Status 204 No Content.
	if len(operations) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Convert entities to handler response representation.
	res := make([]*response.GetOperations, len(operations))
	for i, op := range operations {
		res[i] = response.NewGetOperations(op)
	}

	writeJSON(w, http.StatusOK, res)
}

// Draw an account number without reserving it (POST /api/account-numbers HTTP/1.1).
func (c *AccountController) GenerateAccountNumber(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response.AccountNumber{Number: c.service.GenerateAccountNumber()})
}

func (c *AccountController) operationParams(r *http.Request) (*params.Operation, error) {
	number, err := entities.NewAccountNumber(chi.URLParam(r, "number"))
	if err != nil {
		return nil, err
	}

	// Check content type.
	if !header.IsApplicationJSONContentType(r) {
		return nil, fmt.Errorf("%w: invalid content type", errs.ErrInvalidRequest)
	}

	// Read, decode and close request body.
	defer r.Body.Close()

	var payload request.Operation

	if err = json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, checkJSONDecodeError(err)
	}

	return params.NewOperation(number, payload.Amount), nil
}

// ErrorHandlerFunc handles sending of an error in the JSON format,
// writing appropriate status code and handling the failure to marshal that.
func (c *AccountController) ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	errJSON := errs.JSON{Error: err.Error()}
	code := http.StatusInternalServerError

	switch {
	// Status Bad Request (400).
	case errors.Is(err, errs.ErrInvalidRequest) ||
		errors.Is(err, errs.ErrInvalidAmount) ||
		errors.Is(err, errs.ErrInvalidAccountNumber):
		code = http.StatusBadRequest

	// Status Not Found (404).
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound

	// Status Conflict (409).
	case errors.Is(err, errs.ErrDataConflict):
		code = http.StatusConflict

	// Status Too Many Requests (429).
	case errors.Is(err, errs.ErrRateLimit):
		code = http.StatusTooManyRequests
	}

	writeJSON(w, code, errJSON)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
