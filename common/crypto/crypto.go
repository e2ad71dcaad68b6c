// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crypto 盲签名接口定义, hash 以及随机数
package crypto

import (
	"sort"
	"sync"

	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

var (
	drivers     = make(map[string]BlindCrypto)
	driverMutex sync.Mutex
)

//Register 注册
func Register(name string, driver BlindCrypto) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	if driver == nil {
		panic("crypto: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("crypto: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

//New new
func New(name string) (BlindCrypto, error) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	c, ok := drivers[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownDriver, "unknown driver %q", name)
	}
	return c, nil
}

//GetDriverNames 已注册的驱动名称
func GetDriverNames() []string {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
