// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blanu/huffcodec/huffman"
	"github.com/blanu/huffcodec/report"
)

const octetStream = "application/octet-stream"

type CodecHandler struct {
	maxRequestBytes int64
}

func NewCodecHandler(maxRequestBytes int64) *CodecHandler {
	return &CodecHandler{maxRequestBytes: maxRequestBytes}
}

// readBody reads the whole request body, writing an error response and returning false if it cannot.
func (h *CodecHandler) readBody(c *gin.Context) ([]byte, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxRequestBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return data, true
}

// Compress answers with the container form of the request body.
func (h *CodecHandler) Compress(c *gin.Context) {
	input, ok := h.readBody(c)
	if !ok {
		return
	}

	out, err := huffman.Marshal(input)
	if err != nil {
		log.Errorf("compress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, octetStream, out)
}

// Decompress answers with the original bytes of a container request body.
func (h *CodecHandler) Decompress(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}

	out, err := huffman.Unmarshal(data)
	if err != nil {
		c.JSON(statusForDecodeError(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, octetStream, out)
}

// Stats answers with a JSON report on compressing the request body.
func (h *CodecHandler) Stats(c *gin.Context) {
	input, ok := h.readBody(c)
	if !ok {
		return
	}

	summary, err := report.Summarize(input)
	if err != nil {
		log.Errorf("stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// statusForDecodeError separates containers that are not ours from ones that are ours but damaged.
func statusForDecodeError(err error) int {
	var (
		padding   *huffman.CorruptPaddingError
		truncated *huffman.TruncatedStreamError
	)
	switch {
	case errors.Is(err, huffman.ErrBadMagic), errors.Is(err, huffman.ErrUnsupportedVersion):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, huffman.ErrDigestMismatch),
		errors.Is(err, huffman.ErrCorruptContainer),
		errors.Is(err, huffman.ErrFrequencyMismatch),
		errors.Is(err, huffman.ErrEmptyAlphabet),
		errors.As(err, &padding),
		errors.As(err, &truncated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
