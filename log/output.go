// SPDX-License-Identifier: ice License 1.0

package log

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func openOutput(output string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", outputStderr:
		return os.Stderr, nil
	case outputStdout:
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o700); err != nil { //nolint:mnd // Owner only.
		return nil, errors.Wrapf(err, "failed to create log directory for %v", output)
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)

	return file, errors.Wrapf(err, "failed to open log file %v", output)
}

func asError(anything any) error {
	switch obj := anything.(type) {
	case error:
		return obj
	case string:
		return errors.New(obj)
	default:
		return errors.Errorf("%#v", obj)
	}
}
