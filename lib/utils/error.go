/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package utils

import (
	"fmt"

	"github.com/gravitational/trace"
)

// GenerationError indicates that the seeded generator could not produce
// a key for the requested parameters, e.g. a modulus too small to hold
// two distinct primes
type GenerationError struct {
	// Message describes the failure
	Message string
}

// Error returns the error message
func (e *GenerationError) Error() string {
	return fmt.Sprintf("key generation failed: %v", e.Message)
}

// ArithmeticError indicates that key components do not admit a required
// modular computation, e.g. the primes are not coprime
type ArithmeticError struct {
	// Message describes the failure
	Message string
}

// Error returns the error message
func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("malformed key components: %v", e.Message)
}

// EncodingError indicates that the key could not be serialized
type EncodingError struct {
	// Message describes the failure
	Message string
	// Err is the underlying encoder error, if any
	Err error
}

// Error returns the error message
func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to encode key: %v: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("failed to encode key: %v", e.Message)
}

// GenerationFailure returns a new trace-wrapped GenerationError
func GenerationFailure(format string, args ...interface{}) error {
	return trace.Wrap(&GenerationError{Message: fmt.Sprintf(format, args...)})
}

// ArithmeticFailure returns a new trace-wrapped ArithmeticError
func ArithmeticFailure(format string, args ...interface{}) error {
	return trace.Wrap(&ArithmeticError{Message: fmt.Sprintf(format, args...)})
}

// EncodingFailure returns a new trace-wrapped EncodingError
func EncodingFailure(err error, format string, args ...interface{}) error {
	return trace.Wrap(&EncodingError{Message: fmt.Sprintf(format, args...), Err: err})
}

// IsGenerationError returns true if err is a GenerationError
func IsGenerationError(err error) bool {
	_, ok := trace.Unwrap(err).(*GenerationError)
	return ok
}

// IsArithmeticError returns true if err is an ArithmeticError
func IsArithmeticError(err error) bool {
	_, ok := trace.Unwrap(err).(*ArithmeticError)
	return ok
}

// IsEncodingError returns true if err is an EncodingError
func IsEncodingError(err error) bool {
	_, ok := trace.Unwrap(err).(*EncodingError)
	return ok
}

// ToError either returns error as is, or converts it to Errorf
// in case of unknown object
func ToError(i interface{}) error {
	err, ok := i.(error)
	if ok {
		return err
	}
	return trace.Errorf("unrecognized error: %#v", i)
}
