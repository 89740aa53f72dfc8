// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements functions to manipulate transform errors.
//
// This package is not meant to be exported outside of this repository.
// Public callers classify errors through the bwtmtf.Error interface.
package errors

import (
	"fmt"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// Invalid indicates that this error is due to the user misusing the API
	// and is indicative of a bug on the user's part. This covers empty
	// inputs and out-of-range indexes.
	Invalid

	// Corrupted indicates that the input stream is corrupted.
	Corrupted

	// Closed indicates that the handlers are closed.
	Closed
)

var codeMap = map[int]string{
	Unknown:   "unknown error",
	Internal:  "internal error",
	Invalid:   "invalid argument",
	Corrupted: "corrupted input",
	Closed:    "closed handler",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	return strings.Join(ss, ": ")
}

func (e Error) CompressError()    {}
func (e Error) IsInternal() bool  { return e.Code == Internal }
func (e Error) IsInvalid() bool   { return e.Code == Invalid }
func (e Error) IsCorrupted() bool { return e.Code == Corrupted }
func (e Error) IsClosed() bool    { return e.Code == Closed }

// Errorf constructs an Error with a formatted message.
func Errorf(code int, pkg, format string, args ...interface{}) error {
	return Error{Code: code, Pkg: pkg, Msg: fmt.Sprintf(format, args...)}
}

func IsInternal(err error) bool  { return isCode(err, Internal) }
func IsInvalid(err error) bool   { return isCode(err, Invalid) }
func IsCorrupted(err error) bool { return isCode(err, Corrupted) }
func IsClosed(err error) bool    { return isCode(err, Closed) }

func isCode(err error, code int) bool {
	if cerr, ok := err.(Error); ok && cerr.Code == code {
		return true
	}
	return false
}

// errWrap is used by Panic to distinguish an intentional panic from a
// panic raised by some other code path.
type errWrap struct{ e *error }

func Recover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case errWrap:
		*err = *ex.e
	default:
		panic(ex)
	}
}

// Panic panics with err, which Recover turns back into a returned error.
func Panic(err error) {
	panic(errWrap{&err})
}
