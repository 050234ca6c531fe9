// Package serdser contains the serialization and deserialization
// helpers which are shared by all resource packages. Error responses
// are JSON objects with an "error" message and, for validation errors,
// a "fields" object mapping field names to their messages.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/ambulante/pkg/core/cerr"
	"github.com/momeni/ambulante/pkg/core/log"
)

// InternalErrorMessage is reported for errors which carry no public
// message, so internal details are never leaked to the clients.
const InternalErrorMessage = "internal server error"

func Bind(c *gin.Context, req any, b binding.Binding) bool {
	switch err := c.ShouldBindWith(req, b).(type) {
	case *validator.InvalidValidationError:
		log.Error(c, "invalid binding target", log.Err("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": InternalErrorMessage,
		})
	case validator.ValidationErrors:
		var nameToErrs map[string][]string
		for _, ferr := range err {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "invalid request parameters",
			"fields": nameToErrs,
		})
	default:
		if err == nil {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// BadRequest responds with the 400 status code and the msg message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// SerErr serializes err as a JSON response. A *cerr.Error is reported
// with its status code and public message. The remaining errors are
// logged and reported as internal server errors.
func SerErr(c *gin.Context, err error) {
	var ce *cerr.Error
	if errors.As(err, &ce) {
		if ce.HTTPStatusCode >= http.StatusInternalServerError {
			log.Error(c, "request failed", log.Err("err", err))
		}
		c.JSON(ce.HTTPStatusCode, gin.H{
			"error": ce.PublicMessage(),
		})
		return
	}
	log.Error(c, "unexpected request failure", log.Err("err", err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": InternalErrorMessage,
	})
}
