// Package gin wraps the gin-gonic engine construction, so the config
// package can create an engine with the configured middlewares without
// depending on the gin-gonic and ginslog packages directly.
package gin

import (
	"log/slog"

	ginlogger "github.com/FabienMht/ginslog/logger"
	ginrecovery "github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which logs each request using l.
func Logger(l *slog.Logger) HandlerFunc {
	return ginlogger.New(l)
}

// Recovery returns a middleware which recovers from handler panics,
// logs them using l, and responds with the 500 status code.
func Recovery(l *slog.Logger) HandlerFunc {
	return ginrecovery.New(l)
}
