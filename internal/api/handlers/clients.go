package handlers

import (
	"errors"
	"net/http"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/request"
	"github.com/Ayushkalathiya945/investment--sub001/internal/api/response"
	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
	"github.com/Ayushkalathiya945/investment--sub001/internal/validation"
	"github.com/go-chi/chi/v5"
)

// ClientHandler handles HTTP requests for client endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the clientService.
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler with the provided service dependency.
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// AllClients handles GET requests to retrieve all clients.
//
// Endpoint: GET /api/client
// Response: 200 OK with array of Client
// Error: 500 Internal Server Error if retrieval fails
func (h *ClientHandler) AllClients(w http.ResponseWriter, _ *http.Request) {
	clients, err := h.clientService.GetAllClients()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveClients.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, clients)
}

// GetClient handles GET requests to retrieve a single client by ID.
//
// Endpoint: GET /api/client/{uuid}
// Response: 200 OK with Client
// Error: 400 Bad Request if client ID is invalid (validated by middleware)
// Error: 404 Not Found if client not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	client, err := h.clientService.GetClient(clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClientNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClientNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveClients.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, client)
}

// CreateClient handles POST requests to create a new client.
// Validates the request body and creates a client record in the database.
//
// Endpoint: POST /api/client
// Request Body: CreateClientRequest (code, name, email)
// Response: 201 Created with Client
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the account code already exists
// Error: 500 Internal Server Error if creation fails
func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateClient(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	client, err := h.clientService.CreateClient(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create client", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, client)
}

// UpdateClient handles PUT requests to update an existing client.
//
// Endpoint: PUT /api/client/{uuid}
// Request Body: UpdateClientRequest (all fields optional)
// Response: 200 OK with updated Client
// Error: 400 Bad Request if client ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if client not found
// Error: 500 Internal Server Error if update fails
func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateClientRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateClient(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(r.Context(), clientID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrClientNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClientNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update client", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, client)
}

// DeleteClient handles DELETE requests to remove a client.
// Clients with recorded trades cannot be deleted.
//
// Endpoint: DELETE /api/client/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if client ID is invalid (validated by middleware)
// Error: 404 Not Found if client not found
// Error: 409 Conflict if the client has recorded trades
// Error: 500 Internal Server Error if deletion fails
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	if err := h.clientService.DeleteClient(r.Context(), clientID); err != nil {
		if errors.Is(err, apperrors.ErrClientNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrClientNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrClientHasTrades) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrClientHasTrades.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete client", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
