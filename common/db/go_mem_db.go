// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"github.com/33cn/blindcoin/types"
	log "github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var mlog = log.New("module", "db.memdb")

// memdb 应该无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB db
type GoMemDB struct {
	db *memdb.DB
}

//NewGoMemDB new, 数据只保存在内存中
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	return &GoMemDB{
		db: memdb.New(comparer.DefaultComparer, cache),
	}, nil
}

//Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	v, err := db.db.Get(key)
	if err != nil {
		return nil, types.ErrNotFoundInDb
	}
	return CloneByte(v), nil
}

//Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	err := db.db.Put(key, value)
	if err != nil {
		mlog.Error("Set", "error", err)
		return err
	}
	return nil
}

//Delete 删除
func (db *GoMemDB) Delete(key []byte) error {
	err := db.db.Delete(key)
	if err != nil && err != memdb.ErrNotFound {
		mlog.Error("Delete", "error", err)
		return err
	}
	return nil
}

//List 前缀查询
func (db *GoMemDB) List(prefix []byte) ([][]byte, error) {
	it := db.db.NewIterator(util.BytesPrefix(prefix))
	defer it.Release()
	var values [][]byte
	for it.Next() {
		values = append(values, CloneByte(it.Value()))
	}
	if err := it.Error(); err != nil {
		mlog.Error("List", "error", err)
		return nil, err
	}
	return values, nil
}

//Len 记录数
func (db *GoMemDB) Len() int {
	return db.db.Len()
}

//Close 关闭
func (db *GoMemDB) Close() {
	db.db.Reset()
}
