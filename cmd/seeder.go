package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	companyDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/company"
	userDatamodel "github.com/ntsfreight/client-portal/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"company_assignments", "notifications", "orders", "quotes", "staff_users", "shippers", "companies"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		now := time.Now()

		companies := []companyDatamodel.Company{
			{ID: uuid.NewString(), Name: "Lakeshore Foods", MCNumber: "MC-481516", City: "Chicago", State: "IL", CreatedAt: now, UpdatedAt: now},
			{ID: uuid.NewString(), Name: "Red Rock Materials", MCNumber: "MC-234223", City: "Phoenix", State: "AZ", CreatedAt: now, UpdatedAt: now},
		}
		for i := range companies {
			c := &companies[i]
			var count int64
			db.Model(&companyDatamodel.Company{}).Where("name = ?", c.Name).Count(&count)
			if count > 0 {
				fmt.Println("company already exists:", c.Name)
				if err := db.Where("name = ?", c.Name).First(c).Error; err != nil {
					log.Fatalf("failed to load company %s: %v", c.Name, err)
				}
				continue
			}
			if err := db.Create(c).Error; err != nil {
				log.Fatalf("failed to insert company %s: %v", c.Name, err)
			}
			fmt.Println("Seeded company:", c.Name)
		}

		shipperCompanyID := companies[0].ID
		shippers := []userDatamodel.Shipper{
			{
				ID:              uuid.NewString(),
				Email:           "shipper@lakeshore.example",
				PasswordHash:    string(hash),
				FirstName:       "Dana",
				LastName:        "Whitfield",
				CompanyID:       &shipperCompanyID,
				ProfileComplete: true,
				IsActive:        true,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
		}
		for i := range shippers {
			s := &shippers[i]
			var count int64
			db.Model(&userDatamodel.Shipper{}).Where("email = ?", s.Email).Count(&count)
			if count > 0 {
				fmt.Println("shipper already exists:", s.Email)
				continue
			}
			if err := db.Create(s).Error; err != nil {
				log.Fatalf("failed to insert shipper %s: %v", s.Email, err)
			}
			fmt.Println("Seeded shipper:", s.Email)
		}

		// Role strings mirror the mix found in real staff rows, including
		// legacy spellings that get normalized at request time.
		staff := []userDatamodel.StaffUser{
			{ID: uuid.NewString(), Email: "rep@ntsfreight.example", PasswordHash: string(hash), FirstName: "Marcus", LastName: "Lee", Role: "broker", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: uuid.NewString(), Email: "manager@ntsfreight.example", PasswordHash: string(hash), FirstName: "Priya", LastName: "Raman", Role: "manager", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: uuid.NewString(), Email: "admin@ntsfreight.example", PasswordHash: string(hash), FirstName: "Sam", LastName: "Okafor", Role: "administrator", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: uuid.NewString(), Email: "root@ntsfreight.example", PasswordHash: string(hash), FirstName: "Alex", LastName: "Crane", Role: "superadmin", IsActive: true, CreatedAt: now, UpdatedAt: now},
		}
		for i := range staff {
			s := &staff[i]
			var count int64
			db.Model(&userDatamodel.StaffUser{}).Where("email = ?", s.Email).Count(&count)
			if count > 0 {
				fmt.Println("staff user already exists:", s.Email)
				if err := db.Where("email = ?", s.Email).First(s).Error; err != nil {
					log.Fatalf("failed to load staff %s: %v", s.Email, err)
				}
				continue
			}
			if err := db.Create(s).Error; err != nil {
				log.Fatalf("failed to insert staff %s: %v", s.Email, err)
			}
			fmt.Println("Seeded staff user:", s.Email, "role:", s.Role)
		}

		// Assign the sales rep to both companies so scoped listings have data.
		repID := staff[0].ID
		for _, c := range companies {
			var count int64
			db.Model(&companyDatamodel.CompanyAssignment{}).
				Where("staff_id = ? AND company_id = ?", repID, c.ID).
				Count(&count)
			if count > 0 {
				continue
			}
			assignment := companyDatamodel.CompanyAssignment{
				ID:        uuid.NewString(),
				StaffID:   repID,
				CompanyID: c.ID,
				CreatedAt: now,
			}
			if err := db.Create(&assignment).Error; err != nil {
				log.Fatalf("failed to assign rep to %s: %v", c.Name, err)
			}
			fmt.Println("Assigned sales rep to company:", c.Name)
		}

		fmt.Println("Seeding complete. All seeded accounts use password:", password)
	},
}
