// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 协议统计
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/33cn/blindcoin/types"
	l "github.com/inconshreveable/log15"
	go_metrics "github.com/rcrowley/go-metrics"
)

// 统计项名称
const (
	CoinIssued        = "coin.issued"
	CoinSigned        = "coin.signed"
	CoinAccepted      = "coin.accepted"
	CoinRejected      = "coin.rejected"
	CoinDeposited     = "coin.deposited"
	DoubleSpend       = "coin.doublespend"
	OwnerCheated      = "coin.cheater.owner"
	VerifierCheated   = "coin.cheater.verifier"
	SessionOpened     = "fairsign.session.opened"
	SessionSigned     = "fairsign.session.signed"
	SessionRejected   = "fairsign.session.rejected"
	IssueTimer        = "coin.issue.time"
	SessionTimer      = "fairsign.session.time"
	CandidateRejected = "fairsign.candidate.rejected"
)

var (
	log      = l.New("module", "blindcoin metrics")
	registry = go_metrics.NewRegistry()
)

//Mark 计数加一
func Mark(name string) {
	go_metrics.GetOrRegisterCounter(name, registry).Inc(1)
}

//Count 当前计数
func Count(name string) int64 {
	return go_metrics.GetOrRegisterCounter(name, registry).Count()
}

//UpdateSince 记录耗时
func UpdateSince(name string, start time.Time) {
	go_metrics.GetOrRegisterTimer(name, registry).UpdateSince(start)
}

//Snapshot 所有计数器和计时器的次数
func Snapshot() map[string]int64 {
	res := make(map[string]int64)
	registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			res[name] = m.Count()
		case go_metrics.Timer:
			res[name] = m.Count()
		}
	})
	return res
}

//Format 按名称排序的统计文本
func Format() []string {
	snap := Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s=%d", name, snap[name]))
	}
	return lines
}

type logger struct{}

func (logger) Printf(format string, v ...interface{}) {
	log.Info(fmt.Sprintf(format, v...))
}

//StartMetrics 根据配置文件相关参数启动, 定期输出到日志
func StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	duration := time.Duration(cfg.Duration) * time.Second
	log.Info("StartMetrics", "duration", duration)
	go go_metrics.Log(registry, duration, logger{})
}
