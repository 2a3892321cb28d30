// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/viper"
)

var logLevels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LogLevel maps a level name to a zerolog level; unknown names map to warning
func LogLevel(name string) zerolog.Level {
	if level, ok := logLevels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return zerolog.WarnLevel
}

// SetupLogging configures the global logger from the log.* configuration keys.
// The returned closer releases the log file when log.output names a file.
func SetupLogging() (io.Closer, error) {
	zerolog.SetGlobalLevel(LogLevel(viper.GetString("log.level")))

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)

	output := viper.GetString("log.output")
	switch output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		fh, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err != nil {
			return closer, fmt.Errorf("open log file %s: %w", output, err)
		}
		out = fh
		closer = fh
	}

	if viper.GetBool("log.pretty") {
		out = zerolog.ConsoleWriter{Out: out}
	}
	log.Logger = log.Output(out)

	if viper.GetBool("log.report_caller") {
		log.Logger = log.With().Caller().Logger()
	}

	//nolint:reassign
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	log.Debug().Str("Level", zerolog.GlobalLevel().String()).Str("Output", output).Msg("logging configured")
	return closer, nil
}
