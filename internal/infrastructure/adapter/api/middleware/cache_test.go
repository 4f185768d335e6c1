package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() (*gin.Engine, *int) {
		hits := 0
		store := cache.New(time.Minute, time.Minute)
		router := gin.New()
		router.GET("/reservations", Cache(store, time.Minute), func(c *gin.Context) {
			hits++
			c.JSON(http.StatusOK, gin.H{"hits": hits})
		})
		router.POST("/reservations", Cache(store, time.Minute), func(c *gin.Context) {
			hits++
			c.JSON(http.StatusCreated, gin.H{"hits": hits})
		})
		router.GET("/broken", Cache(store, time.Minute), func(c *gin.Context) {
			hits++
			c.JSON(http.StatusServiceUnavailable, gin.H{"hits": hits})
		})
		return router, &hits
	}

	t.Run("should serve repeated GETs from the cache", func(t *testing.T) {
		router, hits := newRouter()

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/reservations", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/reservations", nil))

		assert.Equal(t, 1, *hits)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("should keep the headers on a cached response", func(t *testing.T) {
		router, _ := newRouter()

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/reservations", nil))
		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/reservations", nil))

		assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
		assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	})

	t.Run("should never cache writes", func(t *testing.T) {
		router, hits := newRouter()

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reservations", nil))
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		assert.Equal(t, 2, *hits)
	})

	t.Run("should not cache failed responses", func(t *testing.T) {
		router, hits := newRouter()

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		}

		assert.Equal(t, 2, *hits)
	})
}
