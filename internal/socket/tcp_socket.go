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
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// listenStream creates a stream socket for the given family, binds it to
// sa and starts listening. On any intermediate failure the partially
// created socket is closed and a wrapped syscall error is returned.
func listenStream(sa unix.Sockaddr, family, backlog int) (fd int, addr net.Addr, err error) {
	if fd, err = sysSocket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP); err != nil {
		err = os.NewSyscallError("socket", err)
		fd = -1
		return
	}
	defer func() {
		if err != nil {
			_ = unix.Close(fd)
			fd = -1
		}
	}()

	if err = os.NewSyscallError("bind", unix.Bind(fd, sa)); err != nil {
		return
	}
	if err = os.NewSyscallError("listen", unix.Listen(fd, backlog)); err != nil {
		return
	}

	bound, serr := unix.Getsockname(fd)
	if serr != nil {
		err = os.NewSyscallError("getsockname", serr)
		return
	}
	addr = SockaddrToTCPAddr(bound)
	return
}
