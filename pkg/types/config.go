package types

import (
	"fmt"
	"time"
)

// Config は全体設定を表すインターフェースです。
type Config interface {
	GetLoader() LoaderConfig
	GetReload() ReloadConfig
	GetLog() LogConfig
	Validate() error
}

// StartupPolicy は初回ロード失敗時の動作ポリシーを表します。
type StartupPolicy string

const (
	// StartupPolicyStop はエラーを呼び出し元へ伝播させます。
	StartupPolicyStop StartupPolicy = "stop"
	// StartupPolicyCrash は整形済みメッセージと共にプロセスをクラッシュさせます。
	StartupPolicyCrash StartupPolicy = "crash"
	// StartupPolicyHalt は数値ステータスで即時終了します(既定)。
	StartupPolicyHalt StartupPolicy = "halt"
)

// LoaderConfig は設定ロード関連の設定を表します。
type LoaderConfig struct {
	Overrides       map[string]string `yaml:"overrides" json:"overrides"`
	ValidatorSuffix string            `yaml:"validator_suffix" json:"validator_suffix"`
	ContentTypes    []string          `yaml:"content_types" json:"content_types"`
}

// ReloadConfig はリロード関連の設定を表します。
type ReloadConfig struct {
	Watch            bool          `yaml:"watch" json:"watch"`
	Debounce         time.Duration `yaml:"debounce" json:"debounce"`
	OnStartupFailure StartupPolicy `yaml:"on_startup_failure" json:"on_startup_failure"`
}

// LogConfig はログ関連設定を表します。
type LogConfig struct {
	Level    string `yaml:"level" json:"level"`
	Format   string `yaml:"format" json:"format"`
	File     string `yaml:"file" json:"file"`
	MaxSize  int    `yaml:"max_size" json:"max_size"`
	MaxAge   int    `yaml:"max_age" json:"max_age"`
	Compress bool   `yaml:"compress" json:"compress"`
}

// AppConfig は具体的な設定実装です。
type AppConfig struct {
	Loader LoaderConfig `yaml:"loader" json:"loader"`
	Reload ReloadConfig `yaml:"reload" json:"reload"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

// GetLoader はロード設定を返します。
func (c *AppConfig) GetLoader() LoaderConfig {
	return c.Loader
}

// GetReload はリロード設定を返します。
func (c *AppConfig) GetReload() ReloadConfig {
	return c.Reload
}

// GetLog はログ設定を返します。
func (c *AppConfig) GetLog() LogConfig {
	return c.Log
}

// Validate は設定の妥当性を検証します。
func (c *AppConfig) Validate() error {
	if c.Reload.Debounce < 0 {
		return fmt.Errorf("reload.debounce は0以上で指定してください: %v", c.Reload.Debounce)
	}

	// OnStartupFailure は stop/crash 以外の任意の値をhalt扱いとするため検証しない

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level が無効です: %s", c.Log.Level)
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format が無効です: %s", c.Log.Format)
	}

	return nil
}
