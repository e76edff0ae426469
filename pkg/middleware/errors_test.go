package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/codebin/codebin/internal/apperror"
)

func TestErrors_RendersKind(t *testing.T) {
	g := gin.New()
	g.Use(Errors())
	g.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("code not found", nil))
		c.Abort()
	})
	g.GET("/denied", func(c *gin.Context) {
		_ = c.Error(apperror.NewForbidden("Forbidden", nil))
		c.Abort()
	})

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rw.Code)
	require.Equal(t, "code not found", errBody(t, rw.Body.Bytes()))

	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/denied", nil))
	require.Equal(t, http.StatusForbidden, rw.Code)
	require.Equal(t, "Forbidden", errBody(t, rw.Body.Bytes()))
}

func TestErrors_UnclassifiedIsGeneric(t *testing.T) {
	g := gin.New()
	g.Use(Errors())
	g.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pg: secret connection string leaked"))
		c.Abort()
	})

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, rw.Code)
	require.Equal(t, "internal error", errBody(t, rw.Body.Bytes()))
	require.NotContains(t, rw.Body.String(), "leaked")
}

func TestErrors_DoesNotTouchSuccess(t *testing.T) {
	g := gin.New()
	g.Use(Errors())
	g.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestNoRoute_FlatBody(t *testing.T) {
	g := gin.New()
	g.Use(Errors())
	g.NoRoute(NoRoute())

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/nonexistent-route", nil))
	require.Equal(t, http.StatusNotFound, rw.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, "Not found", got["error"])
}
