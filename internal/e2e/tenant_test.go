package e2e

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const operatorPassword = "hunter2"

// fakeTenant serves the admin login endpoints and the cache API of one
// self-hosted tenant instance.
type fakeTenant struct {
	server *httptest.Server
	token  string

	refreshes atomic.Int32
	logouts   atomic.Int32

	mu        sync.Mutex
	onRefresh func(id string)
}

func newFakeTenant(t *testing.T) *fakeTenant {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tenant := &fakeTenant{token: mintToken(t, time.Now().Add(time.Hour))}

	router := gin.New()
	router.POST("/api/admin/login", tenant.login)
	router.POST("/api/admin/logout", func(c *gin.Context) {
		tenant.logouts.Add(1)
		c.Status(http.StatusNoContent)
	})

	cache := router.Group("/api/v1/cache", tenant.requireBearer)
	cache.GET("/tool-prompts", func(c *gin.Context) {
		c.JSON(http.StatusOK, []gin.H{{"toolName": "search", "connectorType": "slack", "description": "Slack search"}})
	})
	cache.GET("/prompts", func(c *gin.Context) {
		items := make([]gin.H, 0, 6)
		for _, id := range []string{"p-1", "p-2", "p-3", "p-4", "p-5", "p-6"} {
			items = append(items, gin.H{"id": id, "name": "Prompt " + id})
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	})
	cache.GET("/agents", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "agent index corrupted"})
	})
	cache.GET("/workflows", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []gin.H{{"id": "w-1", "name": "Nightly", "type": "cron"}}})
	})
	cache.POST("/refresh/*target", tenant.refresh)

	tenant.server = httptest.NewServer(router)
	t.Cleanup(tenant.server.Close)
	return tenant
}

func (f *fakeTenant) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Password != operatorPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": f.token})
}

func (f *fakeTenant) requireBearer(c *gin.Context) {
	if strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") != f.token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Next()
}

func (f *fakeTenant) refresh(c *gin.Context) {
	f.refreshes.Add(1)

	segments := strings.Split(strings.Trim(c.Param("target"), "/"), "/")
	if len(segments) == 3 && segments[0] == "tool-prompts" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "tool prompt " + segments[1] + "/" + segments[2] + " rebuilt"})
		return
	}
	if len(segments) != 2 {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown refresh target"})
		return
	}
	id := segments[1]

	f.mu.Lock()
	hook := f.onRefresh
	f.mu.Unlock()
	if hook != nil {
		hook(id)
	}

	if id == "p-5" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "p-5 is pinned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (f *fakeTenant) setRefreshHook(hook func(id string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onRefresh = hook
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "op-7",
		"email": "ops@example.com",
		"role":  "operator",
		"exp":   expiresAt.Unix(),
	}).SignedString([]byte("tenant-signing-key"))
	require.NoError(t, err)
	return signed
}
