package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/sketchbox/games/doodle"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	port         int
	prefix       string
	profile      bool
	redisAddr    string
	redisChannel string
	roundTime    time.Duration
	rounds       int
	tlsCert      string
	tlsKey       string
	verbose      bool
	version      bool
	words        string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.rounds < 1 {
		return fmt.Errorf("invalid round count (must be at least 1): %d", c.rounds)
	}
	if c.roundTime < time.Second || c.roundTime%time.Second != 0 {
		return fmt.Errorf("invalid round time (must be a whole number of seconds, at least 1s): %s", c.roundTime)
	}
	if c.redisAddr != "" && c.redisChannel == "" {
		return errors.New("--redis-channel must not be empty when --redis-addr is set")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SKETCHBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "sketchbox",
		Short:         "A multiplayer drawing and guessing game server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SKETCHBOX_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 3001, "port to listen on (env: SKETCHBOX_PORT or PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: SKETCHBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: SKETCHBOX_PROFILE)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "", "mirror room broadcasts to this redis server (env: SKETCHBOX_REDIS_ADDR)")
	fs.StringVar(&cfg.redisChannel, "redis-channel", "sketchbox", "prefix for mirrored redis channels (env: SKETCHBOX_REDIS_CHANNEL)")
	fs.DurationVar(&cfg.roundTime, "round-time", doodle.DefaultRoundTime, "length of each round (env: SKETCHBOX_ROUND_TIME)")
	fs.IntVar(&cfg.rounds, "rounds", doodle.DefaultMaxRounds, "rounds per game (env: SKETCHBOX_ROUNDS)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: SKETCHBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: SKETCHBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: SKETCHBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: SKETCHBOX_VERSION)")
	fs.StringVar(&cfg.words, "words", "", "file of newline-separated words to draw (env: SKETCHBOX_WORDS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		if f.Name == "port" {
			_ = v.BindEnv(f.Name, "SKETCHBOX_PORT", "PORT")
		} else {
			_ = v.BindEnv(f.Name)
		}
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("sketchbox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
