// SPDX-License-Identifier: EPL-2.0

package decode

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)
