package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Seednode/sketchbox/games/doodle"
	"github.com/dustin/go-humanize"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	logDate string        = `2006-01-02T15:04:05.000-07:00`
	timeout time.Duration = 10 * time.Second
)

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if cfg.scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

func serveVersion(cfg *Config, log zerolog.Logger, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)

		written, err := w.Write([]byte("sketchbox v" + releaseVersion + "\n"))
		if err != nil {
			errs <- err

			return
		}

		log.Info().Msgf("SERVE: Version page (%s) to %s in %s",
			humanize.Bytes(uint64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func newRouter(cfg *Config, log zerolog.Logger, hub *doodle.Hub, game *doodle.Game, errs chan<- error) *httprouter.Router {
	mux := httprouter.New()

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		log.Error().Msgf("SERVE: Panic serving %s: %v", r.URL.Path, i)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)

		io.WriteString(w, newPage("Server Error", "An error has occurred. Please try again."))
	}

	mux.GET(cfg.prefix+"/", serveHomePage(cfg, errs))

	mux.GET(cfg.prefix+"/healthz", serveHealthCheck(cfg, errs))

	mux.GET(cfg.prefix+"/robots.txt", serveRobots(cfg, errs))

	mux.GET(cfg.prefix+"/version", serveVersion(cfg, log, errs))

	if cfg.profile {
		registerProfileHandlers(cfg, mux)
	}

	registerDoodleGame(cfg, log, hub, game, mux, errs)

	return mux
}

// newGateway wraps hub in a redis mirror when one is configured.
func newGateway(ctx context.Context, cfg *Config, log zerolog.Logger, hub *doodle.Hub) (doodle.Gateway, func(), error) {
	if cfg.redisAddr == "" {
		return hub, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.redisAddr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.redisAddr, err)
	}

	mirror := doodle.NewMirror(hub, rdb, cfg.redisChannel, log)
	go mirror.Run(ctx)

	log.Info().Msgf("START: Mirroring room events to redis://%s/%s:room:*", cfg.redisAddr, cfg.redisChannel)

	return mirror, func() { _ = rdb.Close() }, nil
}

func ServePage(ctx context.Context, cfg *Config) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
	}

	log := newLogger(cfg, os.Stderr)

	log.Info().Msgf("START: sketchbox v%s", releaseVersion)

	words := doodle.DefaultWords()
	if cfg.words != "" {
		words, err = doodle.LoadWords(cfg.words)
		if err != nil {
			return err
		}
		log.Info().Msgf("START: Loaded %d words from %s", words.Len(), cfg.words)
	}

	hub := doodle.NewHub(log)
	defer hub.Close()

	gateway, closeGateway, err := newGateway(ctx, cfg, log, hub)
	if err != nil {
		return err
	}
	defer closeGateway()

	game := doodle.New(gateway, doodle.Options{
		Words:     words,
		MaxRounds: cfg.rounds,
		RoundTime: cfg.roundTime,
		Logger:    &log,
	})

	errs := make(chan error, 64)

	go func() {
		for err := range errs {
			log.Warn().Err(err).Msg("SERVE: Write failed")
		}
	}()

	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           newRouter(cfg, log, hub, game, errs),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	serveErr := make(chan error, 1)

	go func() {
		var err error
		log.Info().Msgf("SERVE: Listening on %s://%s%s/", cfg.scheme(), srv.Addr, cfg.prefix)
		if cfg.tlsKey != "" && cfg.tlsCert != "" {
			err = srv.ListenAndServeTLS(cfg.tlsCert, cfg.tlsKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	return nil
}
