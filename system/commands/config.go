// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands blindcoin 命令行
package commands

import (
	"fmt"

	"github.com/33cn/blindcoin/common/log"
	"github.com/33cn/blindcoin/metrics"
	"github.com/33cn/blindcoin/types"
	"github.com/spf13/cobra"
)

// ConfigCmd 输出默认配置
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default config",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(types.GetDefaultCfgstring())
		},
	}
	return cmd
}

// loadConfig 读取 --conf 指定的配置, 并初始化日志和统计
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	path, _ := cmd.Flags().GetString("conf")
	var cfg *types.Config
	var err error
	if path == "" {
		cfg, err = types.InitCfgString(types.GetDefaultCfgstring())
	} else {
		cfg, err = types.InitCfg(path)
	}
	if err != nil {
		return nil, err
	}
	log.SetFileLog(cfg.Log)
	metrics.StartMetrics(cfg.Metrics)
	return cfg, nil
}

func printStat(cmd *cobra.Command) {
	stat, _ := cmd.Flags().GetBool("stat")
	if !stat {
		return
	}
	for _, line := range metrics.Format() {
		fmt.Println(line)
	}
}
