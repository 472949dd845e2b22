package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pixelnest/studio-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	echo := func(c *gin.Context) {
		session, err := utils.GetSession(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": session.ID, "role": session.Role})
	}

	router.GET("/admin", RequireAdmin(), echo)
	router.GET("/portal", RequirePortal(), echo)
	router.GET("/any", RequireSession(), echo)
	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMissingTokenRejected(t *testing.T) {
	router := newTestRouter()

	w := get(router, "/admin", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestGarbageTokenRejected(t *testing.T) {
	router := newTestRouter()

	w := get(router, "/admin", "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRoleMismatchForbidden(t *testing.T) {
	router := newTestRouter()

	token, err := utils.GenerateToken("cust-1", "Ada", utils.RoleCustomer)
	assert.NoError(t, err)

	w := get(router, "/admin", token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestMatchingRolePasses(t *testing.T) {
	router := newTestRouter()

	token, err := utils.GenerateToken("cust-1", "Ada", utils.RoleCustomer)
	assert.NoError(t, err)

	w := get(router, "/portal", token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cust-1")
}

func TestAnyRoleSessionAccepted(t *testing.T) {
	router := newTestRouter()

	for _, role := range []string{utils.RoleAdmin, utils.RoleCustomer} {
		token, err := utils.GenerateToken("subject", "Someone", role)
		assert.NoError(t, err)

		w := get(router, "/any", token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), role)
	}
}
