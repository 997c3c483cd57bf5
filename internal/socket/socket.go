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

// Package socket turns a host and port into a bound, listening stream
// socket: it resolves the host to a socket address, creates a socket for
// the resulting address family, binds it and starts listening.
package socket

import (
	"net"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/duplexio/wslisten/pkg/logging"
)

var (
	bootstrapOnce sync.Once
	maxBacklog    int
)

// bootstrap initializes process-wide networking state, currently the
// kernel's listen backlog ceiling. It runs at most once per process, on
// first use, and is never torn down; every listener in the process shares
// it.
func bootstrap() {
	bootstrapOnce.Do(func() {
		maxBacklog = maxListenerBacklog()
		logging.Debugf("network subsystem initialized, max listen backlog %d", maxBacklog)
	})
}

// ListenTCP resolves host (empty means the wildcard address, IPv6 when
// wildcardV6 is set) and returns a listening stream socket bound to it,
// along with the bound local address. backlog is clamped to the kernel
// maximum; zero requests the minimal queue.
func ListenTCP(host string, port, backlog int, wildcardV6 bool) (int, net.Addr, error) {
	bootstrap()

	sa, family, err := resolveListenAddr(host, port, wildcardV6)
	if err != nil {
		return -1, nil, err
	}
	return listenStream(sa, family, normalizeBacklog(backlog))
}

// Close releases a socket file descriptor.
func Close(fd int) error {
	return os.NewSyscallError("close", unix.Close(fd))
}

func normalizeBacklog(backlog int) int {
	if backlog < 0 {
		return 0
	}
	if backlog > maxBacklog {
		return maxBacklog
	}
	return backlog
}
