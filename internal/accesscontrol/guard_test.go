package accesscontrol

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubSessions struct {
	session *Session
	err     error
	calls   int
}

func (s *stubSessions) Resolve(r *http.Request) (*Session, error) {
	s.calls++
	return s.session, s.err
}

type stubShipperStore struct {
	records map[string]*ShipperRecord
	err     error
	calls   int
}

func (s *stubShipperStore) GetShipperByID(ctx context.Context, id string) (*ShipperRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records[id], nil
}

type stubStaffStore struct {
	records map[string]*StaffRecord
	err     error
	calls   int
}

func (s *stubStaffStore) GetStaffByID(ctx context.Context, id string) (*StaffRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records[id], nil
}

type stubAssignments struct {
	assigned map[string][]string
	err      error
	calls    int
}

func (s *stubAssignments) GetAssignedCompanyIDs(ctx context.Context, staffID string) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.assigned[staffID], nil
}

var _ = Describe("Guard", func() {
	var (
		sessions    *stubSessions
		shippers    *stubShipperStore
		staff       *stubStaffStore
		assignments *stubAssignments
		guard       *Guard
		invoked     int
		handler     http.HandlerFunc
	)

	companyFromQuery := func(r *http.Request) []string {
		if id := r.URL.Query().Get("company_id"); id != "" {
			return []string{id}
		}
		return nil
	}

	decodeRejection := func(rec *httptest.ResponseRecorder) Rejection {
		var rej Rejection
		Expect(json.NewDecoder(rec.Body).Decode(&rej)).To(Succeed())
		return rej
	}

	serve := func(cfg GuardConfig, method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, nil)
		guard.Wrap(cfg, handler)(rec, req)
		return rec
	}

	BeforeEach(func() {
		sessions = &stubSessions{}
		shippers = &stubShipperStore{records: map[string]*ShipperRecord{
			"ship-1": {ID: "ship-1", Email: "shipper@acme.test", CompanyID: "C1", ProfileComplete: true},
		}}
		staff = &stubStaffStore{records: map[string]*StaffRecord{
			"staff-1": {ID: "staff-1", Email: "rep@nts.test", Role: "broker"},
			"staff-2": {ID: "staff-2", Email: "mgr@nts.test", Role: "manager", CompanyID: "C5"},
			"staff-3": {ID: "staff-3", Email: "admin@nts.test", Role: "administrator"},
		}}
		assignments = &stubAssignments{assigned: map[string][]string{
			"staff-1": {"C2", "C3"},
		}}
		guard = NewGuard(sessions, shippers, staff, assignments, NewFixedWindowLimiter(), slog.Default())

		invoked = 0
		handler = func(w http.ResponseWriter, r *http.Request) {
			invoked++
			w.WriteHeader(http.StatusOK)
		}
	})

	Describe("session gate", func() {
		It("rejects requests without a session and never invokes the handler", func() {
			sessions.session = nil

			rec := serve(GuardConfig{}, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			rej := decodeRejection(rec)
			Expect(rej.Success).To(BeFalse())
			Expect(rej.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(invoked).To(BeZero())
		})

		It("rejects sessions matching no stored record", func() {
			sessions.session = &Session{UserID: "ghost", Email: "ghost@nowhere.test"}

			rec := serve(GuardConfig{}, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(shippers.calls).To(Equal(1))
			Expect(staff.calls).To(Equal(1))
			Expect(invoked).To(BeZero())
		})

		It("maps store failures to an opaque 500", func() {
			sessions.session = &Session{UserID: "ship-1"}
			shippers.err = errors.New("connection refused")

			rec := serve(GuardConfig{}, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			rej := decodeRejection(rec)
			Expect(rej.Error).NotTo(ContainSubstring("connection refused"))
			Expect(invoked).To(BeZero())
		})
	})

	Describe("method allow-list", func() {
		It("rejects disallowed methods before any lookup", func() {
			sessions.session = &Session{UserID: "staff-1"}
			cfg := GuardConfig{
				AllowedMethods: []string{http.MethodGet},
				CompanyIDs:     companyFromQuery,
			}

			rec := serve(cfg, http.MethodDelete, "/quotes?company_id=C2")

			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(sessions.calls).To(BeZero())
			Expect(shippers.calls).To(BeZero())
			Expect(staff.calls).To(BeZero())
			Expect(assignments.calls).To(BeZero())
			Expect(invoked).To(BeZero())
		})
	})

	Describe("role gate", func() {
		It("rejects callers outside the allowed set", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{AllowedRoles: []Role{RoleManager, RoleAdmin}}

			rec := serve(cfg, http.MethodGet, "/admin")

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(invoked).To(BeZero())
		})

		It("honors legacy role aliases when gating", func() {
			sessions.session = &Session{UserID: "staff-1"} // stored role "broker"
			cfg := GuardConfig{AllowedRoles: []Role{RoleSalesRep}}

			rec := serve(cfg, http.MethodGet, "/companies")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(invoked).To(Equal(1))
		})
	})

	Describe("permission gate", func() {
		It("passes when any required permission is held", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{RequiredPermissions: []Permission{PermDeleteQuotes, PermViewQuotes}}

			rec := serve(cfg, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("requires every permission in all-of mode", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{
				RequiredPermissions:   []Permission{PermViewQuotes, PermDeleteQuotes},
				RequireAllPermissions: true,
			}

			rec := serve(cfg, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(invoked).To(BeZero())
		})
	})

	Describe("company scope gate", func() {
		cfg := GuardConfig{}

		BeforeEach(func() {
			cfg = GuardConfig{CompanyIDs: companyFromQuery}
		})

		It("allows shippers into their own company", func() {
			sessions.session = &Session{UserID: "ship-1"}

			rec := serve(cfg, http.MethodGet, "/quotes?company_id=C1")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(invoked).To(Equal(1))
		})

		It("rejects shippers requesting another company", func() {
			sessions.session = &Session{UserID: "ship-1"}

			rec := serve(cfg, http.MethodGet, "/quotes?company_id=C2")

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			rej := decodeRejection(rec)
			Expect(rej.StatusCode).To(Equal(http.StatusForbidden))
			Expect(invoked).To(BeZero())
		})

		It("lets admins reach companies absent from any assignment table", func() {
			sessions.session = &Session{UserID: "staff-3"} // "administrator"

			rec := serve(cfg, http.MethodGet, "/quotes?company_id=C-unassigned")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(assignments.calls).To(BeZero())
			Expect(invoked).To(Equal(1))
		})

		It("scopes staff to their assigned companies", func() {
			sessions.session = &Session{UserID: "staff-1"}

			Expect(serve(cfg, http.MethodGet, "/quotes?company_id=C2").Code).To(Equal(http.StatusOK))
			Expect(serve(cfg, http.MethodGet, "/quotes?company_id=C9").Code).To(Equal(http.StatusForbidden))
			Expect(assignments.calls).To(Equal(2))
		})

		It("falls back to the staff user's own company when no assignment store is wired", func() {
			guard = NewGuard(sessions, shippers, staff, nil, NewFixedWindowLimiter(), slog.Default())
			sessions.session = &Session{UserID: "staff-2"} // manager, CompanyID C5

			Expect(serve(cfg, http.MethodGet, "/quotes?company_id=C5").Code).To(Equal(http.StatusOK))
			Expect(serve(cfg, http.MethodGet, "/quotes?company_id=C6").Code).To(Equal(http.StatusForbidden))
		})

		It("skips the check when the request names no company", func() {
			sessions.session = &Session{UserID: "ship-1"}

			rec := serve(cfg, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(assignments.calls).To(BeZero())
		})
	})

	Describe("rate limit gate", func() {
		It("rejects the request after the window maximum with a 429", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{RateLimit: &RateLimitRule{MaxRequests: 2, Window: time.Minute}}

			Expect(serve(cfg, http.MethodGet, "/quotes").Code).To(Equal(http.StatusOK))
			Expect(serve(cfg, http.MethodGet, "/quotes").Code).To(Equal(http.StatusOK))

			rec := serve(cfg, http.MethodGet, "/quotes")
			Expect(rec.Code).To(Equal(http.StatusTooManyRequests))
			Expect(rec.Header().Get("Retry-After")).NotTo(BeEmpty())
			Expect(invoked).To(Equal(2))
		})

		It("counts routes separately for the same user", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{RateLimit: &RateLimitRule{MaxRequests: 1, Window: time.Minute}}

			Expect(serve(cfg, http.MethodGet, "/quotes").Code).To(Equal(http.StatusOK))
			Expect(serve(cfg, http.MethodGet, "/orders").Code).To(Equal(http.StatusOK))
			Expect(serve(cfg, http.MethodGet, "/quotes").Code).To(Equal(http.StatusTooManyRequests))
		})

		It("shares one window across ids under the same parameterized route", func() {
			sessions.session = &Session{UserID: "ship-1"}
			cfg := GuardConfig{RateLimit: &RateLimitRule{MaxRequests: 1, Window: time.Minute}}

			router := chi.NewRouter()
			router.Post("/quotes/{id}/price", guard.Wrap(cfg, handler))

			post := func(target string) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
				return rec
			}

			Expect(post("/quotes/a/price").Code).To(Equal(http.StatusOK))
			Expect(post("/quotes/b/price").Code).To(Equal(http.StatusTooManyRequests))
			Expect(post("/quotes/c/price").Code).To(Equal(http.StatusTooManyRequests))
			Expect(invoked).To(Equal(1))
		})
	})

	Describe("context injection", func() {
		It("exposes the normalized user to the wrapped handler", func() {
			sessions.session = &Session{UserID: "staff-1"}

			var seen *UserContext
			probe := func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
			guard.Wrap(GuardConfig{}, probe)(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen).NotTo(BeNil())
			Expect(seen.Role).To(Equal(RoleSalesRep))
			Expect(seen.UserType).To(Equal(UserTypeStaff))
			Expect(seen.HasPermission(PermViewCompanies)).To(BeTrue())
		})

		It("resolves the shipper store before the staff store", func() {
			sessions.session = &Session{UserID: "ship-1"}

			rec := serve(GuardConfig{}, http.MethodGet, "/quotes")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(shippers.calls).To(Equal(1))
			Expect(staff.calls).To(BeZero())
		})
	})
})
