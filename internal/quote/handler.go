package quote

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/transport"
	"github.com/ntsfreight/client-portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service     *Service
	Assignments accesscontrol.AssignmentStore
}

func NewHandler(svc *Service, assignments accesscontrol.AssignmentStore) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Assignments: assignments,
	}
}

// SubmitQuote handles POST /quotes
func (h *Handler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitQuoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.Service.Submit(r.Context(), user, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, q)
}

// ListQuotes handles GET /quotes
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	scope, err := h.scopeFor(r, user)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	limit, offset := paginationParams(r)
	quotes, err := h.Service.ListForScope(scope, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, quotes)
}

// GetQuote handles GET /quotes/{id}
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	scope, err := h.scopeFor(r, user)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	q, err := h.Service.GetForScope(scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, q)
}

// PriceQuote handles POST /quotes/{id}/price
func (h *Handler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto PriceQuoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.Service.Price(r.Context(), chi.URLParam(r, "id"), user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, q)
}

// ConvertQuote handles POST /quotes/{id}/convert
func (h *Handler) ConvertQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	scope, err := h.scopeFor(r, user)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.Service.GetForScope(scope, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	q, err := h.Service.Convert(r.Context(), id, user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, q)
}

// DeclineQuote handles POST /quotes/{id}/decline
func (h *Handler) DeclineQuote(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	scope, err := h.scopeFor(r, user)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.Service.GetForScope(scope, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	q, err := h.Service.Decline(id, user.ID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) scopeFor(r *http.Request, user *accesscontrol.UserContext) (accesscontrol.CompanyScope, error) {
	var assigned []string
	if user.UserType == accesscontrol.UserTypeStaff && !user.IsAdminTier() && h.Assignments != nil {
		ids, err := h.Assignments.GetAssignedCompanyIDs(r.Context(), user.ID)
		if err != nil {
			h.Logger.Error("assignment lookup failed", "error", err, "user_id", user.ID)
			return accesscontrol.CompanyScope{}, err
		}
		assigned = ids
	}
	return accesscontrol.ResolveCompanyScope(user, assigned), nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteJSON(w, appErr.StatusCode, internal.Response{Error: appErr})
		return
	}
	if errors.Is(err, internal.ErrQuoteNotFound) {
		h.WriteError(w, http.StatusNotFound, "quote not found")
		return
	}
	h.Logger.Error("quote operation failed", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

func paginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	return limit, offset
}
