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
	"fmt"
	"net/url"
	"strconv"

	errorx "github.com/duplexio/wslisten/pkg/errors"
)

// nettcpDefaultPort is the well-known port of the net.tcp scheme, used
// when a net.tcp listen URL carries no explicit port.
const nettcpDefaultPort = 808

// decodeListenURL turns a listen URL into a host and port. The wildcard
// host tokens "+" and "*" decode to an empty host, meaning "bind every
// local interface".
func decodeListenURL(rawURL string) (host string, port int, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", errorx.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", 0, errorx.ErrInvalidURL
	}

	switch {
	case u.Port() != "":
		port, err = strconv.Atoi(u.Port())
		if err != nil || port < 0 || port > 65535 {
			return "", 0, errorx.ErrInvalidURL
		}
	case u.Scheme == "net.tcp":
		port = nettcpDefaultPort
	default:
		return "", 0, errorx.ErrInvalidURL
	}

	host = u.Hostname()
	if host == "+" || host == "*" {
		host = ""
	}
	return host, port, nil
}
