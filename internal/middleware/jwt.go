package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"cabsy/internal/response"
)

// Roles carried in the "role" claim.
const (
	RoleUser   = "user"
	RoleDriver = "driver"
)

// Context keys set by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth issues and checks HS256 tokens.
type Auth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuth(secret string, ttl time.Duration) *Auth {
	return &Auth{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (a *Auth) GenerateToken(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     a.now().Add(a.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
}

// RequireAuth ensures a valid JWT is present
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.authenticate(c)
	}
}

// RequireAuthWithRole ensures the JWT is valid and carries the given role
func (a *Auth) RequireAuthWithRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticate(c) {
			return
		}
		RequireRole(requiredRole)(c)
	}
}

func (a *Auth) authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Abort(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
		return false
	}

	token, err := a.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || !token.Valid {
		response.Abort(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
		return false
	}

	// Store claims in context for downstream handlers
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "Unauthorized", "Invalid token claims")
		return false
	}
	id, err := claimID(claims)
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "Unauthorized", "Invalid token claims")
		return false
	}
	role, _ := claims["role"].(string)
	c.Set(ContextUserID, id)
	c.Set(ContextRole, role)
	return true
}

// JSON numbers decode as float64.
func claimID(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"].(float64)
	if !ok || raw < 1 || raw != float64(uint(raw)) {
		return 0, errors.New("user_id claim missing or not a positive integer")
	}
	return uint(raw), nil
}

// CurrentUser returns the authenticated account id and role.
func CurrentUser(c *gin.Context) (uint, string, error) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, "", fmt.Errorf("no authenticated user")
	}
	id, ok := v.(uint)
	if !ok {
		return 0, "", fmt.Errorf("unexpected user id type %T", v)
	}
	return id, c.GetString(ContextRole), nil
}

// RequireRole checks the role stored by an earlier RequireAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role := c.GetString(ContextRole); role != requiredRole {
			response.Abort(c, http.StatusForbidden, "Forbidden", "Insufficient permissions")
			return
		}
	}
}
