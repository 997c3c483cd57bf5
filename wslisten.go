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

// Package wslisten manages the lifecycle of a server-side listening
// endpoint for duplex-session TCP channels.
//
// A Listener is created with a set of typed configuration properties,
// opened against a listen URL (which resolves the host and binds a
// listening socket), and later closed and freed. Configuration and
// read-only status fields are read and written through a generic,
// introspectable property table keyed by PropertyID.
//
// Accepting and multiplexing the connections queued on an open listener,
// as well as the message protocol spoken over them, are the concern of
// higher layers.
package wslisten

// ChannelType classifies the messaging pattern a listener serves.
type ChannelType uint32

const (
	// ChannelTypeInput is a one-way inbound channel.
	ChannelTypeInput ChannelType = iota
	// ChannelTypeInputSession is a one-way inbound channel with session state.
	ChannelTypeInputSession
	// ChannelTypeDuplex is a two-way channel without session state.
	ChannelTypeDuplex
	// ChannelTypeDuplexSession is a two-way channel with session state.
	// This is the only channel type Create currently implements.
	ChannelTypeDuplexSession
	// ChannelTypeRequest is the client half of request/reply.
	ChannelTypeRequest
	// ChannelTypeReply is the server half of request/reply.
	ChannelTypeReply
)

func (t ChannelType) String() string {
	switch t {
	case ChannelTypeInput:
		return "input"
	case ChannelTypeInputSession:
		return "input-session"
	case ChannelTypeDuplex:
		return "duplex"
	case ChannelTypeDuplexSession:
		return "duplex-session"
	case ChannelTypeRequest:
		return "request"
	case ChannelTypeReply:
		return "reply"
	}
	return "unknown"
}

// ChannelBinding classifies the transport underneath a channel.
type ChannelBinding uint32

const (
	// ChannelBindingHTTP runs channels over HTTP.
	ChannelBindingHTTP ChannelBinding = iota
	// ChannelBindingTCP runs channels over raw TCP. This is the only
	// binding Create currently implements.
	ChannelBindingTCP
	// ChannelBindingUDP runs channels over UDP datagrams.
	ChannelBindingUDP
	// ChannelBindingNamedPipe runs channels over named pipes.
	ChannelBindingNamedPipe
	// ChannelBindingCustom delegates the transport to custom callbacks.
	ChannelBindingCustom
)

func (b ChannelBinding) String() string {
	switch b {
	case ChannelBindingHTTP:
		return "http"
	case ChannelBindingTCP:
		return "tcp"
	case ChannelBindingUDP:
		return "udp"
	case ChannelBindingNamedPipe:
		return "namedpipe"
	case ChannelBindingCustom:
		return "custom"
	}
	return "unknown"
}

// State is the lifecycle state of a Listener.
type State uint32

const (
	// StateCreated means the listener holds no socket yet; Open is allowed.
	StateCreated State = iota
	// StateOpen means the listener owns a bound, listening socket.
	StateOpen
	// StateClosed means the socket has been released; Open is allowed again.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// IPVersion selects the address family a wildcard listen URL binds to.
// Hosts that resolve to a concrete address use the family of that address
// regardless of this setting.
type IPVersion uint32

const (
	// IPVersion4 binds wildcard URLs to the IPv4 wildcard address.
	IPVersion4 IPVersion = iota + 1
	// IPVersion6 binds wildcard URLs to the IPv6 wildcard address.
	IPVersion6
	// IPVersionAuto lets the implementation pick; it currently behaves
	// like IPVersion4.
	IPVersionAuto
)

// CallbackModel configures how asynchronous completions would be
// delivered. The synchronous core never consults it; it exists so the
// property is round-trippable.
type CallbackModel uint32

const (
	// CallbackModelLong allows callbacks to block for long periods.
	CallbackModelLong CallbackModel = iota + 1
	// CallbackModelShort requires callbacks to return promptly.
	CallbackModelShort
)
