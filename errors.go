/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger only lets informational output through with --verbose.
func newLogger(cfg *Config, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.verbose {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: logDate,
		NoColor:    true,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
