package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope helpers for the storefront API shape:
// {success, data, message} on success, {success:false, message, error} on
// failure with the status mirroring the upstream where one is involved.

func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

func Fail(c *gin.Context, status int, message, errMsg string) {
	if message == "" {
		message = "Internal server error"
	}
	if errMsg == "" {
		errMsg = "Unknown error"
	}
	c.JSON(status, gin.H{"success": false, "message": message, "error": errMsg})
}

func BadRequest(c *gin.Context, errMsg string) {
	Fail(c, http.StatusBadRequest, "Invalid request", errMsg)
}

func Unauthorized(c *gin.Context, errMsg string) {
	Fail(c, http.StatusUnauthorized, "Unauthorized", errMsg)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message, "not found")
}

func ServerError(c *gin.Context, err error) {
	Fail(c, http.StatusInternalServerError, "Internal server error", err.Error())
}
