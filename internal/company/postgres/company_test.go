package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/google/uuid"
	"github.com/ntsfreight/client-portal/internal/company"
	companyDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/company"
)

func TestCompanyRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Repository Suite")
}

var _ = Describe("CompanyRepository", func() {
	var (
		db   *gorm.DB
		repo company.Repository
	)

	newCompany := func(name string) *company.Company {
		now := time.Now()
		return &company.Company{
			ID:        uuid.NewString(),
			Name:      name,
			City:      "Chicago",
			State:     "IL",
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&companyDatamodel.Company{}, &companyDatamodel.CompanyAssignment{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewCompanyRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should round-trip a company", func() {
			c := newCompany("Lakeshore Foods")

			Expect(repo.Create(c)).To(Succeed())

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("Lakeshore Foods"))
			Expect(got.City).To(Equal("Chicago"))
		})

		It("should return ErrNotFound for an unknown id", func() {
			_, err := repo.GetByID("missing")

			Expect(err).To(MatchError(company.ErrNotFound))
		})
	})

	Describe("List", func() {
		It("should only return the requested ids, ordered by name", func() {
			a := newCompany("Alpha Logistics")
			b := newCompany("Beta Hauling")
			c := newCompany("Gamma Freight")
			for _, co := range []*company.Company{c, a, b} {
				Expect(repo.Create(co)).To(Succeed())
			}

			got, err := repo.List([]string{a.ID, c.ID}, 50, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			Expect(got[0].Name).To(Equal("Alpha Logistics"))
			Expect(got[1].Name).To(Equal("Gamma Freight"))
		})
	})

	Describe("Update", func() {
		It("should persist changed fields", func() {
			c := newCompany("Lakeshore Foods")
			Expect(repo.Create(c)).To(Succeed())

			c.Phone = "312-555-0101"
			Expect(repo.Update(c)).To(Succeed())

			got, err := repo.GetByID(c.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Phone).To(Equal("312-555-0101"))
		})

		It("should report missing rows", func() {
			c := newCompany("Ghost Carrier")

			Expect(repo.Update(c)).To(MatchError(company.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			c := newCompany("Lakeshore Foods")
			Expect(repo.Create(c)).To(Succeed())

			Expect(repo.Delete(c.ID)).To(Succeed())

			_, err := repo.GetByID(c.ID)
			Expect(err).To(MatchError(company.ErrNotFound))
		})
	})

	Describe("Assignments", func() {
		var c1, c2 *company.Company

		BeforeEach(func() {
			c1 = newCompany("Lakeshore Foods")
			c2 = newCompany("Red Rock Materials")
			Expect(repo.Create(c1)).To(Succeed())
			Expect(repo.Create(c2)).To(Succeed())
		})

		It("should list assigned company ids for a staff user", func() {
			for _, companyID := range []string{c1.ID, c2.ID} {
				err := repo.CreateAssignment(&company.Assignment{
					ID:        uuid.NewString(),
					StaffID:   "staff-1",
					CompanyID: companyID,
					CreatedBy: "admin-1",
					CreatedAt: time.Now(),
				})
				Expect(err).NotTo(HaveOccurred())
			}

			ids, err := repo.GetAssignedCompanyIDs(context.Background(), "staff-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(ConsistOf(c1.ID, c2.ID))
		})

		It("should return no ids for an unassigned staff user", func() {
			ids, err := repo.GetAssignedCompanyIDs(context.Background(), "staff-9")

			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(BeEmpty())
		})

		It("should remove a single assignment", func() {
			Expect(repo.CreateAssignment(&company.Assignment{
				ID:        uuid.NewString(),
				StaffID:   "staff-1",
				CompanyID: c1.ID,
				CreatedAt: time.Now(),
			})).To(Succeed())

			Expect(repo.DeleteAssignment("staff-1", c1.ID)).To(Succeed())
			Expect(repo.DeleteAssignment("staff-1", c1.ID)).To(MatchError(company.ErrAssignmentMissing))
		})
	})
})
