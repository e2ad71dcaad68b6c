// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"
	"time"

	"github.com/33cn/blindcoin/types"
	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	before := Count("test.counter")
	Mark("test.counter")
	Mark("test.counter")
	assert.Equal(t, before+2, Count("test.counter"))

	UpdateSince("test.timer", time.Now())
	snap := Snapshot()
	assert.Equal(t, before+2, snap["test.counter"])
	assert.Equal(t, int64(1), snap["test.timer"])
	assert.Contains(t, Format(), "test.timer=1")
}

func TestStartMetrics(t *testing.T) {
	StartMetrics(nil)
	StartMetrics(&types.Metrics{EnableMetrics: false})
	StartMetrics(&types.Metrics{EnableMetrics: true, Duration: 3600})
}
