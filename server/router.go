// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package server exposes the codec over HTTP.

	GET  /healthz             liveness
	POST /api/v1/compress     raw body -> container
	POST /api/v1/decompress   container body -> raw
	POST /api/v1/stats        raw body -> JSON frequency table, codes and sizes

Every request is handled with its own codec state.
*/
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/blanu/huffcodec/config"
)

var log = logging.MustGetLogger("huffman/server")

type Dependencies struct {
	CodecHandler *CodecHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/compress", d.CodecHandler.Compress)
		v1.POST("/decompress", d.CodecHandler.Decompress)
		v1.POST("/stats", d.CodecHandler.Stats)
	}
}

// New builds the engine for cfg.  Request logging goes through go-logging rather than gin's own logger.
func New(cfg *config.Config) (*gin.Engine, error) {
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	Register(r, Dependencies{
		CodecHandler: NewCodecHandler(cfg.MaxRequestBytes),
	})
	return r, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infof("%s %s %d %d bytes in %v", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), c.Writer.Size(), time.Since(start))
	}
}
