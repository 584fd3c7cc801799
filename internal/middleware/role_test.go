package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shulebooks/sba_backend/internal/middleware"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", middleware.RoleGate())
	group.GET("/accounts", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.POST("/accounts", func(c *gin.Context) { c.Status(http.StatusCreated) })
	group.PUT("/accounts/1", func(c *gin.Context) { c.Status(http.StatusOK) })
	group.DELETE("/accounts/1", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func doRequest(r *gin.Engine, method, path, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoleGate_ReadsPassWithoutHeader(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodGet, "/api/v1/accounts", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleGate_MutationMissingHeader(t *testing.T) {
	r := setupRouter()
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		path := "/api/v1/accounts"
		if method != http.MethodPost {
			path = "/api/v1/accounts/1"
		}
		w := doRequest(r, method, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, method)
	}
}

func TestRoleGate_PermittedRoles(t *testing.T) {
	r := setupRouter()
	for _, role := range []string{"0", "1", "2"} {
		w := doRequest(r, http.MethodPost, "/api/v1/accounts", role)
		assert.Equal(t, http.StatusCreated, w.Code, "role %s", role)
	}
}

func TestRoleGate_RoleTooHigh(t *testing.T) {
	r := setupRouter()
	w := doRequest(r, http.MethodPost, "/api/v1/accounts", "3")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGate_NonNumericRole(t *testing.T) {
	r := setupRouter()
	for _, role := range []string{"admin", "2.5", " 1"} {
		w := doRequest(r, http.MethodPost, "/api/v1/accounts", role)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "role %q", role)
	}
}

func TestRoleGate_ReadsIgnoreBadRole(t *testing.T) {
	r := setupRouter()
	// A bad role header never blocks a read.
	w := doRequest(r, http.MethodGet, "/api/v1/accounts", "admin")
	assert.Equal(t, http.StatusOK, w.Code)
}
