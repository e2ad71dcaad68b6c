// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 根据配置设置 log15 的根日志
package log

import (
	"os"

	"github.com/33cn/blindcoin/types"
	log15 "github.com/inconshreveable/log15"
	"gopkg.in/natefinch/lumberjack.v2"
)

//SetFileLog 控制台总是输出, 配置了 logFile 时同时写入滚动的日志文件
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		cfg = &types.Log{}
	}
	// 未配置时为 error 级别
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}

	handler := log15.LvlFilterHandler(level(cfg.LogConsoleLevel), log15.StreamHandler(os.Stdout, log15.TerminalFormat()))
	if cfg.LogFile != "" {
		handler = log15.MultiHandler(handler, fileHandler(cfg))
	}
	log15.Root().SetHandler(handler)
}

func fileHandler(cfg *types.Log) log15.Handler {
	out := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}
	h := log15.LvlFilterHandler(level(cfg.Loglevel), log15.StreamHandler(out, log15.LogfmtFormat()))
	if cfg.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if cfg.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return h
}

// 级别写错时按 error 处理
func level(s string) log15.Lvl {
	lvl, err := log15.LvlFromString(s)
	if err != nil {
		return log15.LvlError
	}
	return lvl
}
