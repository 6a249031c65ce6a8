package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/ntsfreight/client-portal/internal/accesscontrol"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockRepository struct {
	credentials   map[string]*Credentials
	returnError   bool
	errorToReturn error
}

func newMockRepository() *mockRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	return &mockRepository{
		credentials: map[string]*Credentials{
			"shipper@acme.test": {
				UserID:       "ship-1",
				Email:        "shipper@acme.test",
				PasswordHash: string(hashedPassword),
				UserType:     accesscontrol.UserTypeShipper,
				IsActive:     true,
			},
			"rep@nts.test": {
				UserID:       "staff-1",
				Email:        "rep@nts.test",
				PasswordHash: string(hashedPassword),
				UserType:     accesscontrol.UserTypeStaff,
				IsActive:     true,
			},
			"inactive@acme.test": {
				UserID:       "ship-2",
				Email:        "inactive@acme.test",
				PasswordHash: string(hashedPassword),
				UserType:     accesscontrol.UserTypeShipper,
				IsActive:     false,
			},
		},
	}
}

func (m *mockRepository) GetCredentialsByEmail(email string) (*Credentials, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.credentials[email], nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-test-access-secret",
			"test-refresh-secret-test-refresh-secret",
			15*time.Minute,
			24*time.Hour,
		)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				tokens, err := service.Authenticate(LoginDTO{
					Email:    "shipper@acme.test",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should embed the user identity in the access token", func() {
				tokens, err := service.Authenticate(LoginDTO{
					Email:    "rep@nts.test",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("staff-1"))
				gomega.Expect(claims.Email).To(gomega.Equal("rep@nts.test"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject an unknown email", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "nobody@nowhere.test",
					Password: "any",
				})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "shipper@acme.test",
					Password: "wrong_password",
				})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})

			ginkgo.It("should not leak repository failures", func() {
				mockRepo.returnError = true
				mockRepo.errorToReturn = errors.New("connection refused")

				_, err := service.Authenticate(LoginDTO{
					Email:    "shipper@acme.test",
					Password: "correct_password",
				})
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when the account is inactive", func() {
			ginkgo.It("should return ErrUserInactive", func() {
				_, err := service.Authenticate(LoginDTO{
					Email:    "inactive@acme.test",
					Password: "correct_password",
				})
				gomega.Expect(err).To(gomega.Equal(ErrUserInactive))
			})
		})

		ginkgo.Context("when the DTO is incomplete", func() {
			ginkgo.It("should return a validation error", func() {
				_, err := service.Authenticate(LoginDTO{Email: "shipper@acme.test"})
				gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh token pair for a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "shipper@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("ship-1"))
		})

		ginkgo.It("should reject garbage refresh tokens", func() {
			_, err := service.RefreshTokens("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should not accept an access token in place of a refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "shipper@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should not accept a refresh token as a bearer token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "shipper@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a verifiable bcrypt hash", func() {
			hash, err := service.HashPassword("s3cret")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword(hash, "s3cret")).To(gomega.Succeed())
			gomega.Expect(VerifyPassword(hash, "other")).ToNot(gomega.Succeed())
		})
	})

	ginkgo.Describe("SessionResolver", func() {
		ginkgo.It("should resolve a valid bearer token to a session", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "shipper@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			resolver := NewSessionResolver(service)
			req := httptest.NewRequest("GET", "/quotes", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)

			session, err := resolver.Resolve(req)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).ToNot(gomega.BeNil())
			gomega.Expect(session.UserID).To(gomega.Equal("ship-1"))
		})

		ginkgo.It("should yield no session when the header is missing or bad", func() {
			resolver := NewSessionResolver(service)

			req := httptest.NewRequest("GET", "/quotes", nil)
			session, err := resolver.Resolve(req)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())

			req.Header.Set("Authorization", "Bearer bogus")
			session, err = resolver.Resolve(req)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})

		ginkgo.It("should yield no session for a refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "shipper@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			resolver := NewSessionResolver(service)
			req := httptest.NewRequest("GET", "/quotes", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)

			session, err := resolver.Resolve(req)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session).To(gomega.BeNil())
		})
	})
})
