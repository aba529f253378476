// Package httperr defines the error envelope the dashboard API returns
// and the hook that routes it through gin's error stack.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON error body. Status travels out of band so the
// error middleware can replay it without re-parsing the payload.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the gin context for logging and writes
// the public envelope in one step.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
