// SPDX-License-Identifier: ice License 1.0

package log

// Private API.

const (
	defaultLevel = "info"
	// Anything other than these is treated as a file path, appended to.
	outputStderr = "stderr"
	outputStdout = "stdout"
	logFileMode  = 0o600
)

type (
	cfg struct {
		Encoder string `yaml:"encoder" mapstructure:"encoder"`
		Level   string `yaml:"level" mapstructure:"level"`
		Output  string `yaml:"output" mapstructure:"output"`
	}
)
