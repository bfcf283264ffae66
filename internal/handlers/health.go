package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgdesk/orgdesk/pkg/response"
)

// Health returns a simple status payload useful for readiness checks.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

// Root answers the plain-text liveness banner on GET /.
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "B2B Management API (SQL) is up and running!")
	}
}
