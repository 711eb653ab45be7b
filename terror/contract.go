// SPDX-License-Identifier: ice License 1.0

package terror

// Public API.

type (
	// Err is an error that carries structured details, f.e. the platform a silent login failed on.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)
