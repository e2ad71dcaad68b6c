// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 命令行默认使用的配置, 只输出到控制台
var cfgstring = `
title = "blindcoin"

[log]
loglevel = "error"
logConsoleLevel = "error"
logFile = ""

[bank]
driver = "rsablind"
keyBits = 2048
commitHash = "sha256"

[agency]
driver = "rsablind"
keyBits = 2048
candidates = 10

[ledger]
cacheSize = 1024

[metrics]
enableMetrics = false
duration = 60
`

// GetDefaultCfgstring 默认配置
func GetDefaultCfgstring() string {
	return cfgstring
}
