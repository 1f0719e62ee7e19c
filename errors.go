// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText: 2026 crcflip contributors

package crc

import "github.com/pkg/errors"

// ErrUnsupportedModel is returned by NewParams when width or the
// reflection flags describe a CRC model this engine cannot implement:
// width not a multiple of 8, width < 8, or input/output reflection
// differing from one another.
var ErrUnsupportedModel = errors.New("crc: unsupported model")
