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
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	errorx "github.com/duplexio/wslisten/pkg/errors"
)

// lookupIPAddr is swapped out by tests.
var lookupIPAddr = net.DefaultResolver.LookupIPAddr

// resolveListenAddr turns a host and port into a socket address and its
// family. An empty host means the wildcard address. Literal IPs bypass
// name resolution; otherwise the first IPv4 or IPv6 result wins, and a
// name with no usable address fails with ErrAddressNotAvailable.
//
// Name resolution blocks the calling goroutine for however long the
// system resolver takes.
func resolveListenAddr(host string, port int, wildcardV6 bool) (unix.Sockaddr, int, error) {
	if host == "" {
		if wildcardV6 {
			return ipToSockaddr(net.IPv6unspecified, port, "")
		}
		return ipToSockaddr(net.IPv4zero, port, "")
	}

	if ip := net.ParseIP(host); ip != nil {
		return ipToSockaddr(ip, port, "")
	}

	addrs, err := lookupIPAddr(context.Background(), host)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, 0, errorx.ErrAddressNotAvailable
		}
		return nil, 0, fmt.Errorf("resolve %q: %w", host, err)
	}
	for _, addr := range addrs {
		sa, family, err := ipToSockaddr(addr.IP, port, addr.Zone)
		if err == nil {
			return sa, family, nil
		}
	}
	return nil, 0, errorx.ErrAddressNotAvailable
}
