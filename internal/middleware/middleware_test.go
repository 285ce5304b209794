package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(a *Auth) *gin.Engine {
	r := gin.New()
	r.GET("/any", a.RequireAuth(), func(c *gin.Context) {
		id, role, err := CurrentUser(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/drivers-only", a.RequireAuthWithRole(RoleDriver), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	r := protectedRouter(a)

	userToken, err := a.GenerateToken(7, RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "/any", userToken); w.Code != http.StatusOK {
		t.Fatalf("valid token: %d %s", w.Code, w.Body)
	}
	if w := get(r, "/any", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", w.Code)
	}
	if w := get(r, "/any", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", w.Code)
	}

	other := NewAuth("other-secret", time.Hour)
	forged, _ := other.GenerateToken(7, RoleUser)
	if w := get(r, "/any", forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("token signed with another secret: %d", w.Code)
	}
}

func TestRequireAuthExpired(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	a.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := a.GenerateToken(7, RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	a.now = time.Now
	if w := get(protectedRouter(a), "/any", stale); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: %d", w.Code)
	}
}

func TestRequireAuthRejectsOtherAlgorithms(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 7, "role": RoleUser, "exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(protectedRouter(a), "/any", unsigned); w.Code != http.StatusUnauthorized {
		t.Fatalf("alg none accepted: %d", w.Code)
	}
}

func TestRequireAuthWithRole(t *testing.T) {
	a := NewAuth("test-secret", time.Hour)
	r := protectedRouter(a)

	driverToken, _ := a.GenerateToken(3, RoleDriver)
	userToken, _ := a.GenerateToken(3, RoleUser)
	if w := get(r, "/drivers-only", driverToken); w.Code != http.StatusOK {
		t.Fatalf("driver: %d", w.Code)
	}
	if w := get(r, "/drivers-only", userToken); w.Code != http.StatusForbidden {
		t.Fatalf("user on driver route: %d", w.Code)
	}
	if w := get(r, "/drivers-only", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous on driver route: %d", w.Code)
	}
}

func TestEnableCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	open := EnableCORS(ok)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	open.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("open CORS origin = %q", got)
	}

	restricted := EnableCORS(ok, "https://app.example")
	w = httptest.NewRecorder()
	restricted.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin allowed: %q", got)
	}

	pre := httptest.NewRequest(http.MethodOptions, "/", nil)
	pre.Header.Set("Origin", "https://app.example")
	w = httptest.NewRecorder()
	restricted.ServeHTTP(w, pre)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(RequestIDHeader)
	if minted == "" || w.Body.String() != minted {
		t.Fatalf("minted id %q, body %q", minted, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("caller id not reused: %q", w.Header().Get(RequestIDHeader))
	}
}
