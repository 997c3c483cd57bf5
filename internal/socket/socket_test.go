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
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenTCPLoopback(t *testing.T) {
	fd, addr, err := ListenTCP("127.0.0.1", 0, 128, false)
	require.NoError(t, err)
	require.GreaterOrEqual(t, fd, 0)
	defer Close(fd)

	tcpAddr, ok := addr.(*net.TCPAddr)
	require.True(t, ok, "expected *net.TCPAddr, got %T", addr)
	assert.True(t, tcpAddr.IP.IsLoopback())
	require.Greater(t, tcpAddr.Port, 0)

	conn, err := net.DialTimeout("tcp", tcpAddr.String(), time.Second)
	require.NoError(t, err)
	conn.Close()
}

func TestListenTCPWildcard(t *testing.T) {
	fd, addr, err := ListenTCP("", 0, 0, false)
	require.NoError(t, err)
	defer Close(fd)

	tcpAddr := addr.(*net.TCPAddr)
	assert.True(t, tcpAddr.IP.IsUnspecified())

	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", tcpAddr.Port), time.Second)
	require.NoError(t, err)
	conn.Close()
}

func TestListenTCPBindConflict(t *testing.T) {
	fd, addr, err := ListenTCP("127.0.0.1", 0, 0, false)
	require.NoError(t, err)
	defer Close(fd)

	port := addr.(*net.TCPAddr).Port
	fd2, _, err := ListenTCP("127.0.0.1", port, 0, false)
	require.Error(t, err)
	assert.Equal(t, -1, fd2)
}

func TestNormalizeBacklog(t *testing.T) {
	bootstrap()
	require.Greater(t, maxBacklog, 0)

	assert.Equal(t, 0, normalizeBacklog(-1))
	assert.Equal(t, 0, normalizeBacklog(0))
	assert.Equal(t, 1, normalizeBacklog(1))
	assert.Equal(t, maxBacklog, normalizeBacklog(maxBacklog+1))
}

func TestMaxListenerBacklog(t *testing.T) {
	assert.Greater(t, maxListenerBacklog(), 0)
}
