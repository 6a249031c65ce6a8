package auth

import (
	"net/http"
	"strings"

	"github.com/ntsfreight/client-portal/internal/accesscontrol"
)

// SessionResolver adapts token validation to the guard's session source
// contract. A request without a bearer token yields a nil session rather
// than an error; the guard converts both into a 401.
type SessionResolver struct {
	service ServiceAPI
}

func NewSessionResolver(service ServiceAPI) *SessionResolver {
	return &SessionResolver{service: service}
}

func (s *SessionResolver) Resolve(r *http.Request) (*accesscontrol.Session, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil
	}

	claims, err := s.service.ValidateAccessToken(token)
	if err != nil {
		return nil, nil
	}

	return &accesscontrol.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
