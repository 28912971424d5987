// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrStreamNotOpen = errors.New("huff: stream not open")
	ErrEmptyInput    = errors.New("huff: empty input")
	ErrCorrupt       = errors.New("huff: corrupt container")
	ErrTooLarge      = errors.New("huff: input too large for container format")
	ErrSourceChanged = errors.New("huff: source changed while compressing")
)

// CorruptInputError reports a container that is inconsistent at Offset.
// It matches ErrCorrupt with errors.Is.
type CorruptInputError struct {
	Offset int64
	Reason string
}

func (e *CorruptInputError) Error() string {
	return fmt.Sprintf("huff: corrupt container at offset %d: %s", e.Offset, e.Reason)
}

func (e *CorruptInputError) Unwrap() error {
	return ErrCorrupt
}

func corrupt(offset int64, format string, args ...interface{}) error {
	return &CorruptInputError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// ioError maps errors from closed streams to ErrStreamNotOpen.
func ioError(op string, err error) error {
	if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("%s: %w: %v", op, ErrStreamNotOpen, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
