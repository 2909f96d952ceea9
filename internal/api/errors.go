package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nishant152030/Project-manager-2/internal/state"
	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// messageBody is the error envelope returned to clients.
type messageBody struct {
	Message string `json:"message"`
}

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, messageBody{Message: msg})
}

// abortInternal hides err from the client and attaches it for the access log.
func abortInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	abortMessage(c, http.StatusInternalServerError, "Internal server error")
}

// abortStoreError maps persistence failures to responses. Missing and
// foreign-owned rows both become 404.
func abortStoreError(c *gin.Context, err error, notFound string) {
	if errors.Is(err, state.ErrNotFound) {
		abortMessage(c, http.StatusNotFound, notFound)
		return
	}
	abortInternal(c, err)
}

// bindJSON decodes and validates the request body into v.
// On failure it writes a 400 and returns false.
func bindJSON(c *gin.Context, v interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abortMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := v.Validate(); err != nil {
		abortMessage(c, http.StatusBadRequest, models.ValidationMessage(err))
		return false
	}
	return true
}

// pathID parses a positive integer path parameter. On failure it writes a
// 404 with notFound and returns false.
func pathID(c *gin.Context, name, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		abortMessage(c, http.StatusNotFound, notFound)
		return 0, false
	}
	return id, true
}

// mustUserID returns the authenticated user. Routes using it sit behind
// RequireAuth, so a missing ID is a wiring fault.
func mustUserID(c *gin.Context) (int64, bool) {
	uid, ok := GetUserID(c)
	if !ok {
		abortMessage(c, http.StatusUnauthorized, "Missing bearer token")
		return 0, false
	}
	return uid, true
}
