// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db key-value 存储接口
package db

import (
	"github.com/33cn/blindcoin/types"
	"github.com/pkg/errors"
)

//DB 数据库接口
type DB interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	// List 按key顺序返回所有以prefix开头的value
	List(prefix []byte) ([][]byte, error)
	Len() int
	Close()
}

//const
const (
	MemDBBackendStr = "memdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//NewDB 创建数据库
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	dbCreator, ok := backends[backend]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownDriver, "db backend %s", backend)
	}
	db, err := dbCreator(name, dir, cache)
	if err != nil {
		return nil, errors.Wrapf(err, "init db %s", name)
	}
	return db, nil
}

//CloneByte 复制
func CloneByte(v []byte) []byte {
	value := make([]byte, len(v))
	copy(value, v)
	return value
}
