package quote_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ntsfreight/client-portal/internal"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"github.com/ntsfreight/client-portal/internal/core/events"
	"github.com/ntsfreight/client-portal/internal/quote"
)

type mockRepository struct {
	quotes map[string]*quote.Quote
	err    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{quotes: make(map[string]*quote.Quote)}
}

func (m *mockRepository) Create(q *quote.Quote) error {
	if m.err != nil {
		return m.err
	}
	copied := *q
	m.quotes[q.ID] = &copied
	return nil
}

func (m *mockRepository) GetByID(id string) (*quote.Quote, error) {
	if m.err != nil {
		return nil, m.err
	}
	q, ok := m.quotes[id]
	if !ok {
		return nil, internal.ErrQuoteNotFound
	}
	copied := *q
	return &copied, nil
}

func (m *mockRepository) ListByCompanyIDs(companyIDs []string, limit, offset int) ([]*quote.Quote, error) {
	var out []*quote.Quote
	for _, q := range m.quotes {
		for _, id := range companyIDs {
			if q.CompanyID == id {
				copied := *q
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (m *mockRepository) ListAll(limit, offset int) ([]*quote.Quote, error) {
	var out []*quote.Quote
	for _, q := range m.quotes {
		copied := *q
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockRepository) Update(q *quote.Quote) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.quotes[q.ID]; !ok {
		return internal.ErrQuoteNotFound
	}
	copied := *q
	m.quotes[q.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(id string) error {
	delete(m.quotes, id)
	return nil
}

type mockOrderCreator struct {
	orderID string
	err     error
	calls   int
}

func (m *mockOrderCreator) CreateFromQuote(ctx context.Context, q *quote.Quote, createdBy string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

var _ = Describe("Quote Service", func() {
	var (
		repo    *mockRepository
		orders  *mockOrderCreator
		service *quote.Service
		ctx     context.Context
		shipper *accesscontrol.UserContext
		staff   *accesscontrol.UserContext
	)

	validDTO := func() quote.SubmitQuoteDTO {
		return quote.SubmitQuoteDTO{
			CompanyID:     "company-other",
			OriginCity:    "Chicago",
			OriginState:   "IL",
			DestCity:      "Dallas",
			DestState:     "TX",
			EquipmentType: "dry_van",
			WeightLbs:     42000,
			PickupDate:    time.Now().Add(48 * time.Hour),
		}
	}

	BeforeEach(func() {
		repo = newMockRepository()
		orders = &mockOrderCreator{orderID: "order-1"}
		discard := slog.New(slog.NewTextHandler(io.Discard, nil))
		bus := events.NewEventBus(discard)
		service = quote.NewService(repo, orders, bus, discard)
		ctx = context.Background()

		shipper = &accesscontrol.UserContext{
			ID:        "shipper-1",
			UserType:  accesscontrol.UserTypeShipper,
			Role:      accesscontrol.RoleShipper,
			CompanyID: "company-1",
		}
		staff = &accesscontrol.UserContext{
			ID:       "staff-1",
			UserType: accesscontrol.UserTypeStaff,
			Role:     accesscontrol.RoleSalesRep,
		}
	})

	Describe("Submit", func() {
		Context("when a shipper submits a quote", func() {
			It("should pin the quote to the shipper's own company", func() {
				q, err := service.Submit(ctx, shipper, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(q.CompanyID).To(Equal("company-1"))
				Expect(q.Status).To(Equal(quote.StatusPending))
				Expect(q.CreatedBy).To(Equal("shipper-1"))
				Expect(q.ID).ToNot(BeEmpty())
			})

			It("should reject a shipper with no company", func() {
				shipper.CompanyID = ""

				_, err := service.Submit(ctx, shipper, validDTO())

				Expect(err).To(MatchError(internal.ErrCompanyAccess))
			})
		})

		Context("when a staff user submits a quote", func() {
			It("should keep the requested company", func() {
				q, err := service.Submit(ctx, staff, validDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(q.CompanyID).To(Equal("company-other"))
			})
		})

		Context("when the payload is invalid", func() {
			It("should reject a missing origin", func() {
				dto := validDTO()
				dto.OriginCity = ""

				_, err := service.Submit(ctx, staff, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStop))
			})

			It("should reject an unknown equipment type", func() {
				dto := validDTO()
				dto.EquipmentType = "hovercraft"

				_, err := service.Submit(ctx, staff, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEquipment))
			})
		})
	})

	Describe("Price", func() {
		var pending *quote.Quote

		BeforeEach(func() {
			var err error
			pending, err = service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should attach a rate and mark the quote quoted", func() {
			q, err := service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 185000})

			Expect(err).ToNot(HaveOccurred())
			Expect(q.Status).To(Equal(quote.StatusQuoted))
			Expect(q.RateCents).ToNot(BeNil())
			Expect(*q.RateCents).To(Equal(int64(185000)))
			Expect(q.QuotedBy).ToNot(BeNil())
			Expect(*q.QuotedBy).To(Equal("staff-1"))
			Expect(q.QuotedAt).ToNot(BeNil())
		})

		It("should allow re-pricing a quoted quote", func() {
			_, err := service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 185000})
			Expect(err).ToNot(HaveOccurred())

			q, err := service.Price(ctx, pending.ID, "staff-2", quote.PriceQuoteDTO{RateCents: 190000})

			Expect(err).ToNot(HaveOccurred())
			Expect(*q.RateCents).To(Equal(int64(190000)))
			Expect(*q.QuotedBy).To(Equal("staff-2"))
		})

		It("should reject a non-positive rate", func() {
			_, err := service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 0})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRate))
		})

		It("should reject pricing a converted quote", func() {
			_, err := service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 185000})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Convert(ctx, pending.ID, "staff-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 200000})

			Expect(err).To(MatchError(internal.ErrQuoteConverted))
		})
	})

	Describe("Convert", func() {
		var pending *quote.Quote

		BeforeEach(func() {
			var err error
			pending, err = service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject converting an unpriced quote", func() {
			_, err := service.Convert(ctx, pending.ID, "staff-1")

			Expect(err).To(MatchError(internal.ErrQuoteNotPriced))
			Expect(orders.calls).To(Equal(0))
		})

		Context("when the quote has been priced", func() {
			BeforeEach(func() {
				_, err := service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 185000})
				Expect(err).ToNot(HaveOccurred())
			})

			It("should create an order and mark the quote converted", func() {
				q, err := service.Convert(ctx, pending.ID, "staff-1")

				Expect(err).ToNot(HaveOccurred())
				Expect(q.Status).To(Equal(quote.StatusConverted))
				Expect(q.OrderID).ToNot(BeNil())
				Expect(*q.OrderID).To(Equal("order-1"))
				Expect(orders.calls).To(Equal(1))
			})

			It("should refuse to convert the same quote twice", func() {
				_, err := service.Convert(ctx, pending.ID, "staff-1")
				Expect(err).ToNot(HaveOccurred())

				_, err = service.Convert(ctx, pending.ID, "staff-1")

				Expect(err).To(MatchError(internal.ErrQuoteConverted))
				Expect(orders.calls).To(Equal(1))
			})

			It("should leave the quote untouched when order creation fails", func() {
				orders.err = errors.New("orders table unavailable")

				_, err := service.Convert(ctx, pending.ID, "staff-1")

				Expect(err).To(HaveOccurred())
				stored, getErr := repo.GetByID(pending.ID)
				Expect(getErr).ToNot(HaveOccurred())
				Expect(stored.Status).To(Equal(quote.StatusQuoted))
				Expect(stored.OrderID).To(BeNil())
			})
		})
	})

	Describe("Decline", func() {
		It("should mark an open quote declined", func() {
			pending, err := service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())

			q, err := service.Decline(pending.ID, "shipper-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(q.Status).To(Equal(quote.StatusDeclined))
		})

		It("should refuse to decline a converted quote", func() {
			pending, err := service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Price(ctx, pending.ID, "staff-1", quote.PriceQuoteDTO{RateCents: 185000})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Convert(ctx, pending.ID, "staff-1")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Decline(pending.ID, "shipper-1")

			Expect(err).To(MatchError(internal.ErrQuoteConverted))
		})
	})

	Describe("GetForScope", func() {
		It("should return quotes inside the scope and deny the rest", func() {
			q1, err := service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())

			inScope := accesscontrol.CompanyScope{CompanyIDs: []string{"company-1"}}
			outOfScope := accesscontrol.CompanyScope{CompanyIDs: []string{"company-9"}}

			got, err := service.GetForScope(inScope, q1.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(q1.ID))

			_, err = service.GetForScope(outOfScope, q1.ID)
			Expect(err).To(MatchError(internal.ErrCompanyAccess))
		})

		It("should return not found for unknown quotes", func() {
			_, err := service.GetForScope(accesscontrol.CompanyScope{All: true}, "missing")

			Expect(err).To(MatchError(internal.ErrQuoteNotFound))
		})
	})

	Describe("ListForScope", func() {
		It("should return nothing for an empty scope", func() {
			_, err := service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())

			quotes, err := service.ListForScope(accesscontrol.CompanyScope{}, 50, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(quotes).To(BeEmpty())
		})

		It("should return everything for an all scope", func() {
			_, err := service.Submit(ctx, shipper, validDTO())
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Submit(ctx, staff, validDTO())
			Expect(err).ToNot(HaveOccurred())

			quotes, err := service.ListForScope(accesscontrol.CompanyScope{All: true}, 50, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(quotes).To(HaveLen(2))
		})
	})
})
