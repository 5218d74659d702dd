package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the auth gateway and exposes
// their claims. Token issuance lives outside this service.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	ActorFromContext(ctx context.Context) (Actor, error)
}

// Actor is the authenticated caller as described by the token.
type Actor struct {
	UserID   string
	WorkerID string // empty for roles without a roster entry
	Role     string
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// ActorFromContext reads the verified claims placed in the request
// context by the jwtauth verifier middleware.
func (j *JWTService) ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	workerID, _ := claims["worker_id"].(string)

	return Actor{UserID: userID, WorkerID: workerID, Role: role}, nil
}
