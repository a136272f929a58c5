package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	r.GET("/whoami", RequireRole(models.RoleAdmin, models.RoleVeterinarian), func(c *gin.Context) {
		caller, _ := Caller(c)
		c.JSON(http.StatusOK, caller)
	})
	return r
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		status  int
		body    string
	}{
		{
			name:   "missing user id",
			status: http.StatusUnauthorized,
		},
		{
			name:    "unknown role",
			headers: map[string]string{HeaderUserID: "u1", HeaderUserRole: "farmer"},
			status:  http.StatusForbidden,
		},
		{
			name:    "role not allowed on route",
			headers: map[string]string{HeaderUserID: "u1", HeaderUserRole: "paravet"},
			status:  http.StatusForbidden,
		},
		{
			name: "role is case insensitive",
			headers: map[string]string{
				HeaderUserID:          " vet-7 ",
				HeaderUserName:        "Dr. Rao",
				HeaderUserRole:        "Veterinarian",
				HeaderUserInstitution: "VH Medak",
			},
			status: http.StatusOK,
			body:   `{"id":"vet-7","name":"Dr. Rao","role":"veterinarian","institution":"VH Medak"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			newEngine().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
