package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt читает целый параметр; мусор дает значение по умолчанию,
// выход за границы прижимается к ним
func queryInt(c *gin.Context, name string, def, min, max int) int {
	value := def
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			value = v
		}
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
