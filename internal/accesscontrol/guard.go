package accesscontrol

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"

	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/pkg/logger"
)

// Session is the minimal identity yielded by the session source.
type Session struct {
	UserID string
	Email  string
}

// SessionSource resolves a request into a session, or nil when the request
// carries none. An error means the source itself failed, not that the
// session is absent.
type SessionSource interface {
	Resolve(r *http.Request) (*Session, error)
}

// ShipperStore and StaffStore fetch the two stored record kinds. A (nil,
// nil) return means the record does not exist.
type ShipperStore interface {
	GetShipperByID(ctx context.Context, id string) (*ShipperRecord, error)
}

type StaffStore interface {
	GetStaffByID(ctx context.Context, id string) (*StaffRecord, error)
}

// AssignmentStore fetches the company ids a staff user is assigned to.
type AssignmentStore interface {
	GetAssignedCompanyIDs(ctx context.Context, staffID string) ([]string, error)
}

// CompanyExtractor pulls the company id(s) a request is asking about.
// Returning an empty slice disables the scope check for that request.
type CompanyExtractor func(r *http.Request) []string

type RateLimitRule struct {
	MaxRequests int
	Window      time.Duration
}

// GuardConfig is what a handler author supplies per route. Zero-value
// fields disable the corresponding gate.
type GuardConfig struct {
	AllowedMethods        []string
	AllowedRoles          []Role
	RequiredPermissions   []Permission
	RequireAllPermissions bool
	CompanyIDs            CompanyExtractor
	RateLimit             *RateLimitRule
}

// Guard wraps handlers with the portal's gate chain. Gates run in fixed
// cost order: method allow-list, identity, role, permission, company
// scope, rate limit. Static checks come first so a rejected request never
// pays for an assignment fetch or touches the shared rate counter.
type Guard struct {
	sessions    SessionSource
	shippers    ShipperStore
	staff       StaffStore
	assignments AssignmentStore
	normalizer  *Normalizer
	limiter     RateLimiter
	logger      *slog.Logger
}

func NewGuard(sessions SessionSource, shippers ShipperStore, staff StaffStore, assignments AssignmentStore, limiter RateLimiter, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		sessions:    sessions,
		shippers:    shippers,
		staff:       staff,
		assignments: assignments,
		normalizer:  NewNormalizer(logger),
		limiter:     limiter,
		logger:      logger,
	}
}

// Rejection is the structured value written for every denied request. The
// wrapped handler owns the shape of success responses; the guard never
// touches them.
type Rejection struct {
	Success    bool               `json:"success"`
	Error      string             `json:"error"`
	Code       internal.ErrorCode `json:"code"`
	StatusCode int                `json:"statusCode"`
	Details    interface{}        `json:"details,omitempty"`
}

func rejectionFromAppError(appErr *internal.AppError) Rejection {
	return Rejection{
		Success:    false,
		Error:      appErr.Message,
		Code:       appErr.Code,
		StatusCode: appErr.StatusCode,
		Details:    appErr.Details,
	}
}

func (g *Guard) writeRejection(w http.ResponseWriter, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	if err := json.NewEncoder(w).Encode(rejectionFromAppError(appErr)); err != nil {
		g.logger.Error("failed to encode rejection", "error", err)
	}
}

// Wrap applies the configured gates around next. All failures surface as
// typed rejection values; nothing panics across the transport boundary.
func (g *Guard) Wrap(cfg GuardConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(cfg.AllowedMethods) > 0 && !methodAllowed(cfg.AllowedMethods, r.Method) {
			g.writeRejection(w, internal.NewMethodNotAllowedError(r.Method))
			return
		}

		user, appErr := g.resolveUser(r)
		if appErr != nil {
			g.writeRejection(w, appErr)
			return
		}

		if len(cfg.AllowedRoles) > 0 && !roleAllowed(cfg.AllowedRoles, user.Role) {
			g.logger.Warn("access denied: role not allowed",
				"user_id", user.ID, "role", user.Role, "allowed_roles", cfg.AllowedRoles)
			g.writeRejection(w, internal.NewForbiddenError("insufficient role", internal.ErrCodeInsufficientRole))
			return
		}

		if len(cfg.RequiredPermissions) > 0 {
			satisfied := user.HasAnyPermission(cfg.RequiredPermissions)
			if cfg.RequireAllPermissions {
				satisfied = user.HasAllPermissions(cfg.RequiredPermissions)
			}
			if !satisfied {
				g.logger.Warn("access denied: missing permissions",
					"user_id", user.ID,
					"required_permissions", cfg.RequiredPermissions,
					"require_all", cfg.RequireAllPermissions)
				g.writeRejection(w, internal.NewForbiddenError("insufficient permissions", internal.ErrCodeMissingPermission))
				return
			}
		}

		if cfg.CompanyIDs != nil {
			if appErr := g.checkCompanyScope(r, user, cfg.CompanyIDs); appErr != nil {
				g.writeRejection(w, appErr)
				return
			}
		}

		if cfg.RateLimit != nil && g.limiter != nil {
			key := user.ID + ":" + r.Method + " " + routePattern(r)
			if !g.limiter.Allow(key, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window) {
				g.logger.Warn("rate limit exceeded", "user_id", user.ID, "key", key)
				w.Header().Set("Retry-After", retryAfterSeconds(cfg.RateLimit.Window))
				g.writeRejection(w, internal.NewRateLimitedError("too many requests"))
				return
			}
		}

		ctx := ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "userID", user.ID, "userType", string(user.UserType))
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Middleware adapts Wrap to chi's middleware signature.
func (g *Guard) Middleware(cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.Wrap(cfg, next.ServeHTTP)
	}
}

// resolveUser turns the session into a UserContext, trying the shipper
// store before the staff store.
func (g *Guard) resolveUser(r *http.Request) (*UserContext, *internal.AppError) {
	session, err := g.sessions.Resolve(r)
	if err != nil {
		g.logger.Error("session resolution failed", "error", err)
		return nil, internal.NewUnauthorizedError("invalid session", internal.ErrCodeSessionMissing)
	}
	if session == nil || session.UserID == "" {
		return nil, internal.NewUnauthorizedError("authentication required", internal.ErrCodeSessionMissing)
	}

	ctx := r.Context()

	shipper, err := g.shippers.GetShipperByID(ctx, session.UserID)
	if err != nil {
		g.logger.Error("shipper lookup failed", "user_id", session.UserID, "error", err)
		return nil, internal.NewInternalError("internal server error", err)
	}
	if shipper != nil {
		user, nerr := g.normalizer.FromShipper(shipper)
		if nerr != nil {
			g.logger.Error("shipper record incomplete", "user_id", session.UserID, "error", nerr)
			return nil, internal.NewUnauthorizedError("user not found", internal.ErrCodeUserNotFound)
		}
		return user, nil
	}

	staff, err := g.staff.GetStaffByID(ctx, session.UserID)
	if err != nil {
		g.logger.Error("staff lookup failed", "user_id", session.UserID, "error", err)
		return nil, internal.NewInternalError("internal server error", err)
	}
	if staff != nil {
		user, nerr := g.normalizer.FromStaff(staff)
		if nerr != nil {
			g.logger.Error("staff record incomplete", "user_id", session.UserID, "error", nerr)
			return nil, internal.NewUnauthorizedError("user not found", internal.ErrCodeUserNotFound)
		}
		return user, nil
	}

	g.logger.Warn("session user matches no stored record", "user_id", session.UserID)
	return nil, internal.NewUnauthorizedError("user not found", internal.ErrCodeUserNotFound)
}

// checkCompanyScope verifies every requested company id against the
// resolved scope. Admin-tier roles skip the check entirely, so no
// assignment fetch happens for them.
func (g *Guard) checkCompanyScope(r *http.Request, user *UserContext, extract CompanyExtractor) *internal.AppError {
	requested := extract(r)
	if len(requested) == 0 {
		return nil
	}

	if user.IsAdminTier() {
		return nil
	}

	var assigned []string
	if user.UserType == UserTypeStaff && g.assignments != nil {
		ids, err := g.assignments.GetAssignedCompanyIDs(r.Context(), user.ID)
		if err != nil {
			g.logger.Error("assignment lookup failed", "user_id", user.ID, "error", err)
			return internal.NewInternalError("internal server error", err)
		}
		assigned = ids
	}

	scope := ResolveCompanyScope(user, assigned)
	for _, companyID := range requested {
		if !scope.Contains(companyID) {
			g.logger.Warn("access denied: company out of scope",
				"user_id", user.ID, "role", user.Role, "company_id", companyID)
			return internal.NewForbiddenError("no access to the requested company", internal.ErrCodeCompanyAccess)
		}
	}
	return nil
}

func methodAllowed(allowed []string, method string) bool {
	for _, m := range allowed {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

func roleAllowed(allowed []Role, role Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// routePattern keys the rate counter by the mounted route, not the raw
// path, so every id under a parameterized route shares one window. The
// path fallback only applies when the handler runs outside a chi router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func retryAfterSeconds(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
