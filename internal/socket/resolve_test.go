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

package socket

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	errorx "github.com/duplexio/wslisten/pkg/errors"
)

func stubLookup(t *testing.T, fn func(ctx context.Context, host string) ([]net.IPAddr, error)) {
	t.Helper()
	saved := lookupIPAddr
	lookupIPAddr = fn
	t.Cleanup(func() { lookupIPAddr = saved })
}

func TestResolveWildcard(t *testing.T) {
	sa, family, err := resolveListenAddr("", 9000, false)
	require.NoError(t, err)
	assert.Equal(t, unix.AF_INET, family)
	sa4, ok := sa.(*unix.SockaddrInet4)
	require.True(t, ok)
	assert.Equal(t, 9000, sa4.Port)
	assert.Equal(t, [4]byte{}, sa4.Addr)

	sa, family, err = resolveListenAddr("", 9000, true)
	require.NoError(t, err)
	assert.Equal(t, unix.AF_INET6, family)
	sa6, ok := sa.(*unix.SockaddrInet6)
	require.True(t, ok)
	assert.Equal(t, 9000, sa6.Port)
	assert.Equal(t, [16]byte{}, sa6.Addr)
}

func TestResolveLiteral(t *testing.T) {
	sa, family, err := resolveListenAddr("127.0.0.1", 80, false)
	require.NoError(t, err)
	assert.Equal(t, unix.AF_INET, family)
	assert.Equal(t, [4]byte{127, 0, 0, 1}, sa.(*unix.SockaddrInet4).Addr)

	sa, family, err = resolveListenAddr("::1", 80, false)
	require.NoError(t, err)
	assert.Equal(t, unix.AF_INET6, family)
	assert.EqualValues(t, 1, sa.(*unix.SockaddrInet6).Addr[15])
}

func TestResolveFirstUsableResult(t *testing.T) {
	stubLookup(t, func(context.Context, string) ([]net.IPAddr, error) {
		return []net.IPAddr{
			{IP: net.ParseIP("192.0.2.7")},
			{IP: net.ParseIP("2001:db8::1")},
		}, nil
	})

	sa, family, err := resolveListenAddr("example.test", 443, false)
	require.NoError(t, err)
	assert.Equal(t, unix.AF_INET, family)
	assert.Equal(t, [4]byte{192, 0, 2, 7}, sa.(*unix.SockaddrInet4).Addr)
}

func TestResolveNoUsableAddress(t *testing.T) {
	stubLookup(t, func(context.Context, string) ([]net.IPAddr, error) {
		return nil, nil
	})
	_, _, err := resolveListenAddr("example.test", 443, false)
	assert.ErrorIs(t, err, errorx.ErrAddressNotAvailable)
}

func TestResolveNameNotFound(t *testing.T) {
	stubLookup(t, func(context.Context, string) ([]net.IPAddr, error) {
		return nil, &net.DNSError{Err: "no such host", Name: "example.test", IsNotFound: true}
	})
	_, _, err := resolveListenAddr("example.test", 443, false)
	assert.ErrorIs(t, err, errorx.ErrAddressNotAvailable)
}

func TestResolveTransientFailure(t *testing.T) {
	lookupErr := errors.New("resolver unreachable")
	stubLookup(t, func(context.Context, string) ([]net.IPAddr, error) {
		return nil, lookupErr
	})
	_, _, err := resolveListenAddr("example.test", 443, false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errorx.ErrAddressNotAvailable)
	assert.ErrorIs(t, err, lookupErr)
}
