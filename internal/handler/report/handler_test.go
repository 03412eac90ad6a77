package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The guard substitute rejects everything, so the routes answering 403 are
// exactly the ones registered behind it.
func TestManagementViewsAreGuarded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	guard := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
	h := NewHandler(nil, guard)

	engine := gin.New()
	h.RegisterRoutes(engine.Group(""))

	for _, path := range []string{"/alerts/sales", "/reminders/daily", "/reports/weekly"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	// The dashboard stays open to every role; with no claims on the request
	// it fails authentication rather than the role check.
	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
