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

//go:build linux || freebsd || dragonfly || darwin
// +build linux freebsd dragonfly darwin

package wslisten

import (
	"net"
	"sync"

	"go.uber.org/atomic"

	"github.com/duplexio/wslisten/internal/socket"
	errorx "github.com/duplexio/wslisten/pkg/errors"
	"github.com/duplexio/wslisten/pkg/logging"
)

const noSocket = -1

// Listener owns at most one bound, listening TCP socket together with the
// property table configuring it. All methods serialize on one per-instance
// lock; Open holds it across the whole resolve/bind/listen sequence, so no
// concurrent call ever observes a half-initialized socket.
//
// A Listener moves through StateCreated, StateOpen and StateClosed. State
// is OPEN exactly while a live socket is held. A failed Open leaves both
// state and socket as they were.
type Listener struct {
	alive   atomic.Bool // cleared by Free, checked before every operation
	mu      sync.Mutex
	ctype   ChannelType
	binding ChannelBinding
	state   State
	fd      int      // noSocket when not open
	addr    net.Addr // bound local address while state == StateOpen
	props   *propTable
}

// Create builds a listener for the given channel type and binding and
// applies the initial properties through the validated set path. Only
// ChannelTypeDuplexSession over ChannelBindingTCP is implemented; any
// other combination fails without producing an instance, as does the
// first invalid initial property.
func Create(channelType ChannelType, channelBinding ChannelBinding, props []Property) (*Listener, error) {
	if channelType != ChannelTypeDuplexSession {
		logging.Warnf("channel type %v is not implemented", channelType)
		return nil, errorx.ErrChannelTypeNotImplemented
	}
	if channelBinding != ChannelBindingTCP {
		logging.Warnf("channel binding %v is not implemented", channelBinding)
		return nil, errorx.ErrChannelBindingNotImplemented
	}

	l := &Listener{
		ctype:   channelType,
		binding: channelBinding,
		state:   StateCreated,
		fd:      noSocket,
		props:   newPropTable(listenerProps[:]),
	}
	for _, p := range props {
		if err := l.props.set(p.ID, p.Value); err != nil {
			return nil, err
		}
	}
	l.alive.Store(true)
	logging.Debugf("created %v/%v listener", channelType, channelBinding)
	return l, nil
}

// Open decodes rawURL, resolves its host, then binds and listens a fresh
// socket, moving the listener to StateOpen. It is only valid on a
// listener in StateCreated or StateClosed; re-opening an already open
// listener fails with ErrInvalidOperation and leaves its socket alone.
//
// Resolution, bind and listen all block the calling goroutine with the
// instance lock held. On any failure the partially created socket is
// closed and the listener keeps its pre-call state.
func (l *Listener) Open(rawURL string) error {
	if l == nil || !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}
	if rawURL == "" {
		return errorx.ErrInvalidURL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}
	if l.state != StateCreated && l.state != StateClosed {
		return errorx.ErrInvalidOperation
	}

	host, port, err := decodeListenURL(rawURL)
	if err != nil {
		return err
	}

	// A listener coming back from StateClosed holds no socket, but drop
	// anything stale so the one-live-socket invariant survives.
	l.releaseSocket()

	backlog := int(l.props.uint32At(PropertyListenBacklog))
	wildcardV6 := IPVersion(l.props.uint32At(PropertyIPVersion)) == IPVersion6
	fd, addr, err := socket.ListenTCP(host, port, backlog, wildcardV6)
	if err != nil {
		logging.Errorf("open listener on %q: %v", rawURL, err)
		return err
	}

	l.fd, l.addr = fd, addr
	l.state = StateOpen
	logging.Debugf("listener open on %s", addr)
	return nil
}

// Close releases the listener's socket, if any, and moves it to
// StateClosed. It succeeds regardless of the current state, so closing a
// never-opened or already closed listener is an idempotent no-op apart
// from the state change. The listener may be opened again afterwards.
func (l *Listener) Close() error {
	if l == nil || !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}
	l.releaseSocket()
	l.state = StateClosed
	return nil
}

// Free invalidates the listener and releases everything it owns. It is a
// no-op on a nil or already freed listener; calling it twice is safe.
// Every later operation on the handle fails with ErrInvalidHandle.
func (l *Listener) Free() {
	if l == nil || !l.alive.Load() {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.CompareAndSwap(true, false) {
		return
	}
	l.releaseSocket()
	l.state = StateClosed
	l.props = nil
	logging.Debugf("listener freed")
}

// GetProperty copies the property's stored bytes into buf, whose length
// must equal the declared size of id. State, channel type and channel
// binding are computed from the live instance rather than the table.
func (l *Listener) GetProperty(id PropertyID, buf []byte) error {
	if l == nil || !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}

	switch id {
	case PropertyState:
		return putUint32(buf, uint32(l.state))
	case PropertyChannelType:
		return putUint32(buf, uint32(l.ctype))
	case PropertyChannelBinding:
		return putUint32(buf, uint32(l.binding))
	default:
		return l.props.get(id, buf)
	}
}

// SetProperty overwrites the property's stored bytes. The value length
// must equal the declared size of id, and read-only properties are
// rejected.
func (l *Listener) SetProperty(id PropertyID, value []byte) error {
	if l == nil || !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.Load() {
		return errorx.ErrInvalidHandle
	}
	return l.props.set(id, value)
}

// Addr returns the bound local address. It fails unless the listener is
// open.
func (l *Listener) Addr() (net.Addr, error) {
	if l == nil || !l.alive.Load() {
		return nil, errorx.ErrInvalidHandle
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.alive.Load() {
		return nil, errorx.ErrInvalidHandle
	}
	if l.state != StateOpen {
		return nil, errorx.ErrInvalidOperation
	}
	return l.addr, nil
}

// releaseSocket closes the owned socket if one is held. Callers hold l.mu.
func (l *Listener) releaseSocket() {
	if l.fd == noSocket {
		return
	}
	if err := socket.Close(l.fd); err != nil {
		logging.Errorf("close listener socket: %v", err)
	}
	l.fd = noSocket
	l.addr = nil
}
