/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Seednode/sketchbox/games/doodle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	game *doodle.Game
	srv  *httptest.Server
}

func newTestServer(t *testing.T, cfg *Config) *testServer {
	t.Helper()

	log := zerolog.Nop()
	hub := doodle.NewHub(log)
	game := doodle.New(hub, doodle.Options{Logger: &log})

	errs := make(chan error, 16)

	srv := httptest.NewServer(newRouter(cfg, log, hub, game, errs))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return &testServer{game: game, srv: srv}
}

func (ts *testServer) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(ts.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, body
}

func TestRouter_StaticPages(t *testing.T) {
	ts := newTestServer(t, validConfig())

	resp, body := ts.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ok\n", string(body))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	resp, body = ts.get(t, "/version")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sketchbox v"+releaseVersion+"\n", string(body))

	resp, body = ts.get(t, "/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Disallow: /rooms/")
	assert.Contains(t, string(body), "Disallow: /ws")

	resp, body = ts.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/ws")

	resp, _ = ts.get(t, "/pprof/heap")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Prefix(t *testing.T) {
	cfg := validConfig()
	cfg.prefix = "/draw"
	cfg.profile = true

	ts := newTestServer(t, cfg)

	resp, _ := ts.get(t, "/draw/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = ts.get(t, "/healthz")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := ts.get(t, "/draw/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Disallow: /draw/rooms/")

	resp, _ = ts.get(t, "/draw/pprof/goroutine")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RoomSnapshot(t *testing.T) {
	ts := newTestServer(t, validConfig())

	resp, _ := ts.get(t, "/rooms/R1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ts.get(t, "/rooms/R1/qr")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ts.game.Join("R1", "a", "alice")
	ts.game.Join("R1", "b", "bob")

	resp, body := ts.get(t, "/rooms/R1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var snap doodle.RoomSnapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "R1", snap.ID)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, "a", snap.DrawerID)
	assert.Equal(t, "counting_down", snap.State)
	assert.Len(t, snap.Players, 2)

	for _, w := range []string{"apple", "car", "house", "tree", "dog", "computer", "banana", "rocket", "guitar", "pizza"} {
		assert.NotContains(t, string(body), `"`+w+`"`)
	}
}

func TestRouter_RoomQR(t *testing.T) {
	ts := newTestServer(t, validConfig())
	ts.game.Join("R1", "a", "alice")

	resp, body := ts.get(t, "/rooms/R1/qr")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, qrSize, img.Bounds().Dx())
}

func TestNewGateway_WithoutRedis(t *testing.T) {
	hub := doodle.NewHub(zerolog.Nop())
	defer hub.Close()

	gw, closeGateway, err := newGateway(context.Background(), validConfig(), zerolog.Nop(), hub)
	require.NoError(t, err)
	defer closeGateway()

	assert.Same(t, hub, gw)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	cfg := validConfig()
	log := newLogger(cfg, &buf)
	log.Info().Msg("START: quiet")
	log.Warn().Msg("SERVE: loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	buf.Reset()
	cfg.verbose = true
	log = newLogger(cfg, &buf)
	log.Info().Msg("START: chatty")

	assert.True(t, strings.Contains(buf.String(), "chatty"))
}
