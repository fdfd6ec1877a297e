package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All API responses share a flat envelope with a top-level "status" of either
// "success" or "error".

func OK(c *gin.Context, payload gin.H) {
	respond(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	respond(c, http.StatusCreated, payload)
}

func Fail(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respond(c *gin.Context, httpStatus int, payload gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}
