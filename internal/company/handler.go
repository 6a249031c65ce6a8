package company

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
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateCompany handles POST /companies
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, company)
}

// ListCompanies handles GET /companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var assigned []string
	if user.UserType == accesscontrol.UserTypeStaff && !user.IsAdminTier() {
		ids, err := h.Service.GetAssignedCompanyIDs(r.Context(), user.ID)
		if err != nil {
			h.Logger.Error("assignment lookup failed", "error", err, "user_id", user.ID)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		assigned = ids
	}

	scope := accesscontrol.ResolveCompanyScope(user, assigned)
	limit, offset := paginationParams(r)

	companies, err := h.Service.ListForScope(scope, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, companies)
}

// GetCompany handles GET /companies/{id}
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	company, err := h.Service.GetByID(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, company)
}

// UpdateCompany handles PATCH /companies/{id}
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company, err := h.Service.Update(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, company)
}

// DeleteCompany handles DELETE /companies/{id}
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AssignStaff handles POST /companies/assignments
func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	user, ok := accesscontrol.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AssignStaffDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.AssignStaff(user.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, assignment)
}

// UnassignStaff handles DELETE /companies/{id}/assignments/{staffID}
func (h *Handler) UnassignStaff(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "id")
	staffID := chi.URLParam(r, "staffID")

	if err := h.Service.UnassignStaff(staffID, companyID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteJSON(w, appErr.StatusCode, internal.Response{Error: appErr})
		return
	}
	if errors.Is(err, ErrNotFound) {
		h.WriteError(w, http.StatusNotFound, "company not found")
		return
	}
	h.Logger.Error("company operation failed", "error", err)
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
