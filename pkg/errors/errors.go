// Copyright (c) 2023 The Wslisten Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines common errors for wslisten.
package errors

import "errors"

var (
	// ErrInvalidHandle occurs when an operation is attempted on a nil or
	// already freed listener.
	ErrInvalidHandle = errors.New("wslisten: listener handle is nil or already freed")
	// ErrInvalidURL occurs when a listen URL is empty or cannot be decoded
	// into a host and port.
	ErrInvalidURL = errors.New("wslisten: listen URL is empty or malformed")
	// ErrInvalidOperation occurs when a request is incompatible with the
	// listener's current state, e.g. opening an already open listener.
	ErrInvalidOperation = errors.New("wslisten: operation is not valid in the current listener state")
	// ErrChannelTypeNotImplemented occurs when creating a listener for any
	// channel type other than duplex-session.
	ErrChannelTypeNotImplemented = errors.New("wslisten: only the duplex-session channel type is implemented")
	// ErrChannelBindingNotImplemented occurs when creating a listener for
	// any channel binding other than TCP.
	ErrChannelBindingNotImplemented = errors.New("wslisten: only the TCP channel binding is implemented")
	// ErrUnknownProperty occurs when a property id is outside the set a
	// listener declares.
	ErrUnknownProperty = errors.New("wslisten: unknown property id")
	// ErrPropertySizeMismatch occurs when a property read or write supplies
	// a buffer whose length differs from the declared size of the property.
	ErrPropertySizeMismatch = errors.New("wslisten: property size does not match the declared size")
	// ErrReadOnlyProperty occurs when writing a property declared read-only.
	ErrReadOnlyProperty = errors.New("wslisten: property is read-only")
	// ErrPropertyBufferMissing occurs when a property read supplies no
	// output buffer.
	ErrPropertyBufferMissing = errors.New("wslisten: property buffer is nil")
	// ErrAddressNotAvailable occurs when name resolution yields no IPv4 or
	// IPv6 address for the host of a listen URL.
	ErrAddressNotAvailable = errors.New("wslisten: no usable IPv4 or IPv6 address for host")
)
