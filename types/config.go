// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"io/ioutil"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 配置
type Config struct {
	Title   string   `json:"title,omitempty"`
	Log     *Log     `json:"log,omitempty"`
	Bank    *Bank    `json:"bank,omitempty"`
	Agency  *Agency  `json:"agency,omitempty"`
	Ledger  *Ledger  `json:"ledger,omitempty"`
	Metrics *Metrics `json:"metrics,omitempty"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `json:"loglevel,omitempty"`
	LogConsoleLevel string `json:"logConsoleLevel,omitempty"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下, 为空时只输出到控制台
	LogFile string `json:"logFile,omitempty"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `json:"maxFileSize,omitempty"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `json:"maxBackups,omitempty"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `json:"maxAge,omitempty"`
	// 日志文件名是否使用本地时间（否则使用UTC时间）
	LocalTime bool `json:"localTime,omitempty"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `json:"compress,omitempty"`
	// 是否打印调用源文件和行号
	CallerFile bool `json:"callerFile,omitempty"`
	// 是否打印调用方法
	CallerFunction bool `json:"callerFunction,omitempty"`
}

// Bank 发行 coin 的银行
type Bank struct {
	Driver     string `json:"driver,omitempty"`
	KeyBits    int    `json:"keyBits,omitempty"`
	CommitHash string `json:"commitHash,omitempty"`
}

// Agency cut-and-choose 盲签名机构
type Agency struct {
	Driver  string `json:"driver,omitempty"`
	KeyBits int    `json:"keyBits,omitempty"`
	// 每次会话的候选文档个数
	Candidates int `json:"candidates,omitempty"`
}

// Ledger 花费记录
type Ledger struct {
	CacheSize int `json:"cacheSize,omitempty"`
}

// Metrics 统计
type Metrics struct {
	EnableMetrics bool `json:"enableMetrics,omitempty"`
	// 单位秒
	Duration int64 `json:"duration,omitempty"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	cfg := &Config{Title: "blindcoin"}
	cfg.fillDefault()
	return cfg
}

func (cfg *Config) fillDefault() {
	if cfg.Title == "" {
		cfg.Title = "blindcoin"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Bank == nil {
		cfg.Bank = &Bank{}
	}
	if cfg.Bank.Driver == "" {
		cfg.Bank.Driver = BlindDriverRSA
	}
	if cfg.Bank.KeyBits == 0 {
		cfg.Bank.KeyBits = 2048
	}
	if cfg.Bank.CommitHash == "" {
		cfg.Bank.CommitHash = HashSha256
	}
	if cfg.Agency == nil {
		cfg.Agency = &Agency{}
	}
	if cfg.Agency.Driver == "" {
		cfg.Agency.Driver = BlindDriverRSA
	}
	if cfg.Agency.KeyBits == 0 {
		cfg.Agency.KeyBits = 2048
	}
	if cfg.Agency.Candidates == 0 {
		cfg.Agency.Candidates = DefaultCandidates
	}
	if cfg.Ledger == nil {
		cfg.Ledger = &Ledger{}
	}
	if cfg.Ledger.CacheSize == 0 {
		cfg.Ledger.CacheSize = 1024
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Metrics.Duration == 0 {
		cfg.Metrics.Duration = 60
	}
}

// Check 检查配置参数
func (cfg *Config) Check() error {
	if cfg.Bank.KeyBits < MinKeyBits {
		return errors.Wrapf(ErrConfig, "bank.keyBits %d less than %d", cfg.Bank.KeyBits, MinKeyBits)
	}
	if cfg.Agency.KeyBits < MinKeyBits {
		return errors.Wrapf(ErrConfig, "agency.keyBits %d less than %d", cfg.Agency.KeyBits, MinKeyBits)
	}
	if cfg.Agency.Candidates < MinCandidates {
		return errors.Wrapf(ErrConfig, "agency.candidates %d less than %d", cfg.Agency.Candidates, MinCandidates)
	}
	switch cfg.Bank.CommitHash {
	case HashSha256, HashSha3, HashSm3, HashRipemd160:
	default:
		return errors.Wrapf(ErrConfig, "bank.commitHash %s", cfg.Bank.CommitHash)
	}
	if cfg.Ledger.CacheSize <= 0 {
		return errors.Wrap(ErrConfig, "cache size must be positive")
	}
	return nil
}

func initCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	cfg.fillDefault()
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitCfg 初始化配置
func InitCfg(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 初始化配置
func InitCfgString(cfgstring string) (*Config, error) {
	return initCfgString(cfgstring)
}

// MustInitCfgString 初始化配置, 出错直接panic, 仅用于测试以及内置配置
func MustInitCfgString(cfgstring string) *Config {
	cfg, err := InitCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}
