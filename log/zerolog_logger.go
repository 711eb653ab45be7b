// SPDX-License-Identifier: ice License 1.0
//go:build !stdlog

package log

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/ice-blockchain/playfab/config"
)

const (
	stackFramesToSkip = 2
)

//nolint:gochecknoglobals // One logger for the whole client.
var (
	logger *zerolog.Logger
)

//nolint:gochecknoinits // The logger has to be ready before anything else logs.
func init() {
	var appCfg cfg
	config.MustLoadFromKey("logger", &appCfg)
	if appCfg.Level == "" {
		appCfg.Level = defaultLevel
	}
	out, err := openOutput(appCfg.Output)
	if err != nil {
		panic(err)
	}
	zerolog.DisableSampling(true)
	zerolog.ErrorStackMarshaler = errorStackMarshaller //nolint:reassign // Only during init.
	zerolog.InterfaceMarshalFunc = json.Marshal
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	if logger, err = buildLogger(out, strings.EqualFold(appCfg.Encoder, "json"), appCfg.Level); err != nil {
		panic(err)
	}
	log.SetFlags(0)
	log.SetOutput(logger)
}

func buildLogger(out io.Writer, isJSON bool, level string) (*zerolog.Logger, error) { //nolint:revive // Control coupling is intended here.
	if !isJSON {
		out = &zerolog.ConsoleWriter{
			Out:          out,
			TimeFormat:   time.RFC3339Nano,
			PartsOrder:   []string{zerolog.LevelFieldName, zerolog.TimestampFieldName, zerolog.MessageFieldName},
			PartsExclude: []string{zerolog.ErrorStackFieldName, zerolog.CallerFieldName},
		}
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid logger level %q", level)
	}
	lgr := zerolog.New(out).With().Timestamp().Stack().Logger().Level(lvl)

	return &lgr, nil
}

func errorStackMarshaller(err error) any {
	frames, ok := pkgerrors.MarshalStack(err).([]map[string]string)
	if !ok || len(frames) <= stackFramesToSkip {
		return nil
	}
	stack := make([]string, 0, len(frames)-stackFramesToSkip)
	for _, frame := range frames[:len(frames)-stackFramesToSkip] {
		stack = append(stack, fmt.Sprintf("%s:%s:%s",
			frame[pkgerrors.StackSourceFileName],
			frame[pkgerrors.StackSourceLineName],
			frame[pkgerrors.StackSourceFunctionName]))
	}

	return strings.Join(stack, "<<")
}

// send expects fields as alternating keys and values.
func send(event *zerolog.Event, msg string, fields ...any) {
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	send(logger.Err(err), "", fields...)
}

func Debug(msg string, fields ...any) {
	send(logger.Debug(), msg, fields...)
}

func Info(msg string, fields ...any) {
	send(logger.Info(), msg, fields...)
}

func Warn(msg string, fields ...any) {
	send(logger.Warn(), msg, fields...)
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	send(logger.Fatal().Err(asError(anything)), "", fields...)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	send(logger.Panic().Err(asError(anything)), "", fields...)
}

func Level() string {
	return logger.GetLevel().String()
}
