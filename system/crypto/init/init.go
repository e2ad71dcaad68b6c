// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package init 初始化系统盲签名驱动
package init

import (
	//初始化
	_ "github.com/33cn/blindcoin/system/crypto/rsablind"
)
