// SPDX-License-Identifier: ice License 1.0
//go:build stdlog

package log

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ice-blockchain/playfab/config"
)

//nolint:gochecknoglobals // Immutable singletons.
var (
	appCfg cfg
	levels = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}
)

//nolint:gochecknoinits // The logger has to be ready before anything else logs.
func init() {
	config.MustLoadFromKey("logger", &appCfg)
	if _, known := levels[strings.ToLower(appCfg.Level)]; !known {
		appCfg.Level = defaultLevel
	}
	out, err := openOutput(appCfg.Output)
	if err != nil {
		panic(err)
	}
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix | log.LUTC | log.Lmicroseconds)
}

func enabled(level string) bool {
	return levels[level] >= levels[strings.ToLower(appCfg.Level)]
}

// printf renders fields as key=value pairs.
func printf(level, msg string, fields ...any) {
	var line strings.Builder
	line.WriteString(level)
	line.WriteString(": ")
	line.WriteString(msg)
	for ix := 0; ix+1 < len(fields); ix += 2 {
		fmt.Fprintf(&line, " %v=%v", fields[ix], fields[ix+1])
	}
	if len(fields)%2 == 1 {
		fmt.Fprintf(&line, " %v", fields[len(fields)-1])
	}
	log.Print(line.String())
}

func Error(err error, fields ...any) {
	if err == nil {
		return
	}
	printf("ERROR", fmt.Sprintf("%+v", err), fields...)
}

func Debug(msg string, fields ...any) {
	if enabled("debug") {
		printf("DEBUG", msg, fields...)
	}
}

func Info(msg string, fields ...any) {
	if enabled("info") {
		printf("INFO", msg, fields...)
	}
}

func Warn(msg string, fields ...any) {
	if enabled("warn") {
		printf("WARN", msg, fields...)
	}
}

func Fatal(anything any, fields ...any) {
	if anything == nil {
		return
	}
	Error(asError(anything), fields...)
	os.Exit(1)
}

func Panic(anything any, fields ...any) {
	if anything == nil {
		return
	}
	Error(asError(anything), fields...)
	panic(anything)
}

func Level() string {
	return strings.ToLower(appCfg.Level)
}
