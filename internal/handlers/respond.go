package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/levelminds/levelminds-backend/internal/apperr"
)

// Every response uses the same envelope:
//
//	{"success": bool, "message": string, ...payload}
func ok(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, log *zap.Logger, err error) {
	if e, ok := apperr.As(err); ok {
		c.JSON(e.Status(), gin.H{"success": false, "message": e.Message})
		return
	}
	log.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false, "message": "An internal server error occurred.",
	})
}

// bindFail turns binding errors into a 400 with per-field detail when the
// validator produced one.
func bindFail(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, gin.H{
				"field":   strings.ToLower(fe.Field()),
				"message": fmt.Sprintf("failed on the %q rule", fe.Tag()),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request payload.", "errors": details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false, "message": "Invalid request payload.",
	})
}
