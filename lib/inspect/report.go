// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"
	"io"
	"strconv"
)

// absent replaces a value that could not be resolved.
const absent = "absent"

// report writes the line-oriented text report. The first write error
// is kept and later lines are dropped.
type report struct {
	writer io.Writer
	err    error
}

func (r *report) line(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.writer, format+"\n", args...)
}

func formatCount(count uint32, err error) string {
	if err != nil {
		return absent
	}
	return strconv.FormatUint(uint64(count), 10)
}

func formatInt(value int, err error) string {
	if err != nil {
		return absent
	}
	return strconv.Itoa(value)
}

func formatInt32(value int32, err error) string {
	return formatInt(int(value), err)
}

func formatString(value string, err error) string {
	if err != nil {
		return absent
	}
	return value
}
