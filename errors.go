package astifilter

import (
	"errors"
	"fmt"
)

// ErrUnterminatedSwsFlags is returned when the leading "sws_flags="
// directive has no terminating ";"
var ErrUnterminatedSwsFlags = errors.New(`astifilter: sws_flags not terminated with ";"`)

// UnknownFilterError is returned when the registry doesn't recognize a
// filter name
type UnknownFilterError struct {
	Name string
}

// Error implements the error interface
func (e UnknownFilterError) Error() string {
	return fmt.Sprintf("astifilter: no such filter: %q", e.Name)
}

// FilterInitError is returned when the registry recognizes a filter name
// but rejects the instantiation
type FilterInitError struct {
	Args string
	Err  error
	Name string
}

// Error implements the error interface
func (e FilterInitError) Error() string {
	if e.Args == "" {
		return fmt.Sprintf("astifilter: initializing filter %q failed: %s", e.Name, e.Err)
	}
	return fmt.Sprintf("astifilter: initializing filter %q with args %q failed: %s", e.Name, e.Args, e.Err)
}

// Unwrap returns the registry error
func (e FilterInitError) Unwrap() error {
	return e.Err
}

// TooManyInputsError is returned when more input pads are supplied to a
// filter than it declares
type TooManyInputsError struct {
	Filter string
}

// Error implements the error interface
func (e TooManyInputsError) Error() string {
	return fmt.Sprintf("astifilter: too many inputs specified for the %q filter", e.Filter)
}

// TooFewOutputsError is returned when a trailing link label has no output
// pad left to attach to
type TooFewOutputsError struct {
	Label string
}

// Error implements the error interface
func (e TooFewOutputsError) Error() string {
	return fmt.Sprintf("astifilter: no output pad can be associated to link label %q", e.Label)
}

// TrailingTextError is returned when a filter spec is followed by
// something else than ",", ";", a link label or the end of the input
type TrailingTextError struct {
	Remaining string
}

// Error implements the error interface
func (e TrailingTextError) Error() string {
	return fmt.Sprintf("astifilter: unable to parse graph description substring: %q", e.Remaining)
}
