// Package config は、conflo アプリケーション自体の設定管理機能を提供します。
package config

import (
	"context"

	"github.com/harakeishi/conflo/pkg/types"
)

// ConfigValidator はツール設定の妥当性を検証するインターフェースです。
type ConfigValidator interface {
	Validate(ctx context.Context, config types.Config) error
}

// AppConfigValidator はConfigValidatorの実装です。
type AppConfigValidator struct{}

// NewAppConfigValidator は新しいAppConfigValidatorを作成します。
func NewAppConfigValidator() *AppConfigValidator {
	return &AppConfigValidator{}
}

// Validate はツール設定の妥当性を検証します。
func (v *AppConfigValidator) Validate(ctx context.Context, config types.Config) error {
	return config.Validate()
}
