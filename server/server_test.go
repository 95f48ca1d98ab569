// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"

	"github.com/blanu/huffcodec/config"
	"github.com/blanu/huffcodec/huffman"
	"github.com/blanu/huffcodec/report"
	"github.com/blanu/huffcodec/server"
)

func TestMain(m *testing.M) {
	logging.SetLevel(logging.WARNING, "")
	os.Exit(m.Run())
}

func newEngine(t *testing.T, maxRequestBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.New()
	cfg.MaxRequestBytes = maxRequestBytes
	r, err := server.New(cfg)
	require.NoError(t, err)
	return r
}

func post(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newEngine(t, 1024)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok": true}`, w.Body.String())
}

func TestCompressDecompress(t *testing.T) {
	r := newEngine(t, 1<<20)
	input := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 20))

	w := post(r, "/api/v1/compress", input)
	require.Equal(t, http.StatusOK, w.Code)
	container := w.Body.Bytes()
	require.Less(t, len(container), len(input))

	direct, err := huffman.Unmarshal(container)
	require.NoError(t, err)
	require.Equal(t, input, direct)

	w = post(r, "/api/v1/decompress", container)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, input, w.Body.Bytes())
}

func TestDecompressErrors(t *testing.T) {
	r := newEngine(t, 1<<20)

	w := post(r, "/api/v1/decompress", []byte("definitely not a container"))
	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	container, err := huffman.Marshal([]byte("abracadabra"))
	require.NoError(t, err)
	container[len(container)-1] ^= 0xff
	w = post(r, "/api/v1/decompress", container)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "digest")
}

func TestStats(t *testing.T) {
	r := newEngine(t, 1<<20)

	w := post(r, "/api/v1/stats", []byte("abracadabra"))
	require.Equal(t, http.StatusOK, w.Code)

	var summary report.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Equal(t, 11, summary.InputBytes)
	require.Equal(t, uint64(23), summary.EncodedBits)
	require.Len(t, summary.Entries, 5)
	require.Equal(t, "0", summary.Entries[4].Code)
}

func TestRequestTooLarge(t *testing.T) {
	r := newEngine(t, 16)

	w := post(r, "/api/v1/compress", bytes.Repeat([]byte{'x'}, 17))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBadConfig(t *testing.T) {
	cfg := config.New()
	cfg.ListenAddress = ""
	_, err := server.New(cfg)
	require.ErrorIs(t, err, config.ErrNoListenAddress)
}
