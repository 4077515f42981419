package config

import (
	"time"

	"github.com/harakeishi/conflo/pkg/types"
)

// DefaultConfig はデフォルト設定を返します。
func DefaultConfig() *types.AppConfig {
	return &types.AppConfig{
		Loader: types.LoaderConfig{
			Overrides:       map[string]string{},
			ValidatorSuffix: "_validator",
			ContentTypes:    []string{"application/yaml", "text/yaml"},
		},
		Reload: types.ReloadConfig{
			Watch:            false,
			Debounce:         500 * time.Millisecond,
			OnStartupFailure: types.StartupPolicyHalt,
		},
		Log: types.LogConfig{
			Level:    "info",
			Format:   "text",
			File:     "",
			MaxSize:  100,
			MaxAge:   30,
			Compress: true,
		},
	}
}

// DefaultLoaderConfig はデフォルトのロード設定を返します。
func DefaultLoaderConfig() types.LoaderConfig {
	return types.LoaderConfig{
		Overrides:       map[string]string{},
		ValidatorSuffix: "_validator",
		ContentTypes:    []string{"application/yaml", "text/yaml"},
	}
}

// DefaultReloadConfig はデフォルトのリロード設定を返します。
func DefaultReloadConfig() types.ReloadConfig {
	return types.ReloadConfig{
		Watch:            false,
		Debounce:         500 * time.Millisecond,
		OnStartupFailure: types.StartupPolicyHalt,
	}
}

// DefaultLogConfig はデフォルトのログ設定を返します。
func DefaultLogConfig() types.LogConfig {
	return types.LogConfig{
		Level:    "info",
		Format:   "text",
		File:     "",
		MaxSize:  100,
		MaxAge:   30,
		Compress: true,
	}
}

// RecommendedConfigs は推奨設定のバリエーションを提供します。

// DevelopmentConfig は開発環境向けの設定を返します。
func DevelopmentConfig() *types.AppConfig {
	config := DefaultConfig()
	config.Log.Level = "debug"
	config.Log.Format = "text"
	config.Reload.Watch = true
	config.Reload.Debounce = 200 * time.Millisecond
	config.Reload.OnStartupFailure = types.StartupPolicyStop
	return config
}

// ProductionConfig は本番環境向けの設定を返します。
func ProductionConfig() *types.AppConfig {
	config := DefaultConfig()
	config.Log.Level = "warn"
	config.Log.Format = "json"
	config.Log.File = "/var/log/conflo/conflo.log"
	config.Reload.Watch = true
	config.Reload.Debounce = 1 * time.Second
	return config
}

// TestConfig はテスト環境向けの設定を返します。
func TestConfig() *types.AppConfig {
	config := DefaultConfig()
	config.Log.Level = "debug"
	config.Log.Format = "text"
	config.Reload.Debounce = 10 * time.Millisecond
	config.Reload.OnStartupFailure = types.StartupPolicyStop
	return config
}
