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

package wslisten

import (
	"encoding/binary"

	errorx "github.com/duplexio/wslisten/pkg/errors"
)

// PropertyID identifies one configuration or status field of a Listener.
type PropertyID uint32

const (
	// PropertyListenBacklog is the queue length for pending connections,
	// a scalar, applied on the next Open.
	PropertyListenBacklog PropertyID = iota
	// PropertyIPVersion is the IPVersion used for wildcard binds, a scalar.
	PropertyIPVersion
	// PropertyState is the listener's current State. Read-only.
	PropertyState
	// PropertyAsyncCallbackModel is the CallbackModel, a scalar.
	PropertyAsyncCallbackModel
	// PropertyChannelType is the ChannelType fixed at creation. Read-only.
	PropertyChannelType
	// PropertyChannelBinding is the ChannelBinding fixed at creation.
	// Read-only.
	PropertyChannelBinding
	// PropertyConnectTimeout is a timeout in milliseconds, a scalar. It is
	// stored but not enforced by Open.
	PropertyConnectTimeout
	// PropertyIsMulticast is a boolean scalar.
	PropertyIsMulticast
	// PropertyMulticastInterfaces is a variable-size field; its declared
	// size is zero, so only zero-length writes are accepted.
	PropertyMulticastInterfaces
	// PropertyMulticastLoopback is a boolean scalar.
	PropertyMulticastLoopback
	// PropertyCloseTimeout is a timeout in milliseconds, a scalar. It is
	// stored but not enforced by Close.
	PropertyCloseTimeout
	// PropertyToHeaderMatchingOptions is an option bitmask, a scalar.
	PropertyToHeaderMatchingOptions
	// PropertyTransportURLMatchingOptions is an option bitmask, a scalar.
	PropertyTransportURLMatchingOptions
	// PropertyCustomListenerCallbacks is the callback table for the custom
	// channel binding.
	PropertyCustomListenerCallbacks
	// PropertyCustomListenerParameters is a variable-size field; its
	// declared size is zero, so only zero-length writes are accepted.
	PropertyCustomListenerParameters
	// PropertyCustomListenerInstance is the opaque custom listener
	// reference. Read-only.
	PropertyCustomListenerInstance
	// PropertyDisallowedUserAgentSubstrings is the header describing
	// rejected user-agent substrings.
	PropertyDisallowedUserAgentSubstrings
)

// Property is one (id, value) pair supplied at creation time.
type Property struct {
	ID    PropertyID
	Value []byte
}

const (
	scalarSize    = 4  // fixed-width scalars and enums
	referenceSize = 8  // opaque references
	callbacksSize = 72 // custom listener callback table, nine references
	substringSize = 16 // disallowed user-agent substrings header
)

type propDesc struct {
	size     int
	readOnly bool
}

// listenerProps declares the id space of a listener's property table: the
// exact byte size and mutability of every property. Reads and writes are
// validated against it; the layout never changes after creation.
var listenerProps = [...]propDesc{
	PropertyListenBacklog:                 {size: scalarSize},
	PropertyIPVersion:                     {size: scalarSize},
	PropertyState:                         {size: scalarSize, readOnly: true},
	PropertyAsyncCallbackModel:            {size: scalarSize},
	PropertyChannelType:                   {size: scalarSize, readOnly: true},
	PropertyChannelBinding:                {size: scalarSize, readOnly: true},
	PropertyConnectTimeout:                {size: scalarSize},
	PropertyIsMulticast:                   {size: scalarSize},
	PropertyMulticastInterfaces:           {},
	PropertyMulticastLoopback:             {size: scalarSize},
	PropertyCloseTimeout:                  {size: scalarSize},
	PropertyToHeaderMatchingOptions:       {size: scalarSize},
	PropertyTransportURLMatchingOptions:   {size: scalarSize},
	PropertyCustomListenerCallbacks:       {size: callbacksSize},
	PropertyCustomListenerParameters:      {},
	PropertyCustomListenerInstance:        {size: referenceSize, readOnly: true},
	PropertyDisallowedUserAgentSubstrings: {size: substringSize},
}

// propTable is a generic typed property store. Every entry is
// zero-initialized to its declared size at creation and only mutated
// through the validated get/set calls. The table is not safe for
// concurrent use on its own; the owning Listener serializes access.
type propTable struct {
	descs   []propDesc
	entries [][]byte
}

func newPropTable(descs []propDesc) *propTable {
	entries := make([][]byte, len(descs))
	for i, d := range descs {
		entries[i] = make([]byte, d.size)
	}
	return &propTable{descs: descs, entries: entries}
}

func (t *propTable) set(id PropertyID, value []byte) error {
	if int(id) >= len(t.descs) {
		return errorx.ErrUnknownProperty
	}
	if t.descs[id].readOnly {
		return errorx.ErrReadOnlyProperty
	}
	if len(value) != t.descs[id].size {
		return errorx.ErrPropertySizeMismatch
	}
	copy(t.entries[id], value)
	return nil
}

func (t *propTable) get(id PropertyID, buf []byte) error {
	if int(id) >= len(t.descs) {
		return errorx.ErrUnknownProperty
	}
	if buf == nil {
		return errorx.ErrPropertyBufferMissing
	}
	if len(buf) != t.descs[id].size {
		return errorx.ErrPropertySizeMismatch
	}
	copy(buf, t.entries[id])
	return nil
}

// uint32At reads a stored scalar directly, bypassing caller buffers. Only
// valid for ids declared with scalarSize.
func (t *propTable) uint32At(id PropertyID) uint32 {
	return binary.LittleEndian.Uint32(t.entries[id])
}

func putUint32(buf []byte, v uint32) error {
	if buf == nil {
		return errorx.ErrPropertyBufferMissing
	}
	if len(buf) != scalarSize {
		return errorx.ErrPropertySizeMismatch
	}
	binary.LittleEndian.PutUint32(buf, v)
	return nil
}

// Uint32Bytes encodes v in the form scalar properties are stored in,
// ready to pass to SetProperty.
func Uint32Bytes(v uint32) []byte {
	b := make([]byte, scalarSize)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// Uint32Value decodes a scalar property previously filled in by
// GetProperty. The buffer must be exactly the scalar size.
func Uint32Value(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// BoolBytes encodes v in the form boolean properties are stored in.
func BoolBytes(v bool) []byte {
	if v {
		return Uint32Bytes(1)
	}
	return Uint32Bytes(0)
}

// BoolValue decodes a boolean property previously filled in by GetProperty.
func BoolValue(b []byte) bool {
	return Uint32Value(b) != 0
}
