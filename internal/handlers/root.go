package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var names = []string{"Alice", "Bob", "Charlie"}

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func (h *RootHandler) Names(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"names": names})
}
