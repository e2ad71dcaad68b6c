// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/33cn/blindcoin/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, level("debug"))
	assert.Equal(t, log15.LvlInfo, level("info"))
	assert.Equal(t, log15.LvlError, level("unknown"))
}

func TestSetFileLogDefault(t *testing.T) {
	cfg := &types.Log{}
	SetFileLog(cfg)
	assert.Equal(t, "eror", cfg.Loglevel)
	assert.Equal(t, "eror", cfg.LogConsoleLevel)
	SetFileLog(nil)
}

func TestSetFileLog(t *testing.T) {
	dir, err := ioutil.TempDir("", "blindcoinlog")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "blindcoin.log")
	SetFileLog(&types.Log{
		Loglevel:        "info",
		LogConsoleLevel: "crit",
		LogFile:         file,
		MaxFileSize:     1,
		CallerFile:      true,
	})
	log15.New("module", "logtest").Info("written", "key", "value")
	log15.New("module", "logtest").Debug("dropped", "key", "debug")

	data, err := ioutil.ReadFile(file)
	require.Nil(t, err)
	assert.True(t, strings.Contains(string(data), "module=logtest"))
	assert.True(t, strings.Contains(string(data), "key=value"))
	assert.False(t, strings.Contains(string(data), "dropped"))

	SetFileLog(&types.Log{LogConsoleLevel: "crit"})
}
