package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/harakeishi/conflo/internal/errors"
	"github.com/harakeishi/conflo/internal/logger"
	"github.com/harakeishi/conflo/pkg/types"
)

func nopLogger() logger.Logger {
	return &logger.NopLogger{}
}

func TestSchemaValidator_Validate(t *testing.T) {
	ctx := context.Background()
	v := NewSchemaValidator(loggingSchema())

	t.Run("正常値の変換と既定値の補完", func(t *testing.T) {
		config, err := v.Validate(ctx, types.ComponentOptions{"level": "debug"})
		require.NoError(t, err)
		assert.Equal(t, "debug", config["level"])
		// format は既定値で補完される
		assert.Equal(t, "text", config["format"])
	})

	t.Run("空のオプションは既定値のみ", func(t *testing.T) {
		config, err := v.Validate(ctx, types.ComponentOptions{})
		require.NoError(t, err)
		assert.Equal(t, "info", config["level"])
		assert.Equal(t, "text", config["format"])
	})

	t.Run("不明なオプションは既知一覧付きで失敗する", func(t *testing.T) {
		_, err := v.Validate(ctx, types.ComponentOptions{"levle": "info"})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrOptionUnknown, appErr.Code)

		known, _ := appErr.Field(apperrors.FieldKnown)
		assert.Equal(t, []string{"file", "format", "level"}, known)

		path, _ := appErr.Field(apperrors.FieldPath)
		assert.Equal(t, "levle", path)
	})

	t.Run("列挙に含まれない値は失敗する", func(t *testing.T) {
		_, err := v.Validate(ctx, types.ComponentOptions{"level": "verbose"})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrOptionEnumInvalid, appErr.Code)

		got, _ := appErr.Field(apperrors.FieldGot)
		assert.Equal(t, "verbose", got)
	})

	t.Run("必須オプション欠落は失敗する", func(t *testing.T) {
		listener := NewSchemaValidator(listenerSchema())
		_, err := listener.Validate(ctx, types.ComponentOptions{"host": "0.0.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
	})

	t.Run("スカラー型の変換", func(t *testing.T) {
		listener := NewSchemaValidator(listenerSchema())
		config, err := listener.Validate(ctx, types.ComponentOptions{
			"port":         "8080",
			"read_timeout": "5s",
		})
		require.NoError(t, err)
		assert.Equal(t, 8080, config["port"])
		assert.Equal(t, 5*time.Second, config["read_timeout"])
	})
}

func TestStructValidator_Validate(t *testing.T) {
	ctx := context.Background()
	v := NewStructValidator(
		func() interface{} { return &StorageOptions{MaxConnections: 10} },
		[]string{"driver", "path", "max_connections", "busy_timeout"},
	)

	t.Run("構造体経由の変換と既定値", func(t *testing.T) {
		config, err := v.Validate(ctx, types.ComponentOptions{
			"driver":       "sqlite",
			"path":         "/var/lib/app.db",
			"busy_timeout": "200ms",
		})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", config["driver"])
		assert.Equal(t, 10, config["max_connections"])
		assert.Equal(t, 200*time.Millisecond, config["busy_timeout"])
	})

	t.Run("タグにないオプションは不明オプション", func(t *testing.T) {
		_, err := v.Validate(ctx, types.ComponentOptions{"drivr": "sqlite"})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrOptionUnknown, appErr.Code)

		got, _ := appErr.Field(apperrors.FieldGot)
		assert.Equal(t, "drivr", got)
	})
}

func TestConventionDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	nop := nopLogger()

	t.Run("命名規約によるユニット解決", func(t *testing.T) {
		d := NewConventionDispatcher(NewBuiltinProvider(), nil, DefaultValidatorSuffix, nop)

		registry, err := d.Dispatch(ctx, []string{"logging", "listener"})
		require.NoError(t, err)
		assert.Len(t, registry, 2)
		assert.Contains(t, registry, "logging")
		assert.Contains(t, registry, "listener")
	})

	t.Run("明示オーバーライドが規約に優先する", func(t *testing.T) {
		provider := NewStaticProvider()
		provider.Register("custom_unit", func() (Validator, error) {
			return NewSchemaValidator(Schema{}), nil
		})

		overrides := map[string]string{"special": "custom_unit"}
		d := NewConventionDispatcher(provider, overrides, DefaultValidatorSuffix, nop)

		registry, err := d.Dispatch(ctx, []string{"special"})
		require.NoError(t, err)
		assert.Contains(t, registry, "special")
	})

	t.Run("ユニットが見つからなければサポート外", func(t *testing.T) {
		d := NewConventionDispatcher(NewBuiltinProvider(), nil, DefaultValidatorSuffix, nop)

		_, err := d.Dispatch(ctx, []string{"logging", "mystery"})
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrComponentUnsupported, appErr.Code)

		component, _ := appErr.Field(apperrors.FieldComponent)
		assert.Equal(t, "mystery", component)
	})

	t.Run("バリデーター取得の失敗はユニット無効", func(t *testing.T) {
		provider := NewStaticProvider()
		provider.Register("broken"+DefaultValidatorSuffix, func() (Validator, error) {
			return nil, assert.AnError
		})

		d := NewConventionDispatcher(provider, nil, DefaultValidatorSuffix, nop)
		_, err := d.Dispatch(ctx, []string{"broken"})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrComponentValidatorInvalid, apperrors.CodeOf(err))
	})

	t.Run("最初の失敗で中断する", func(t *testing.T) {
		d := NewConventionDispatcher(NewBuiltinProvider(), nil, DefaultValidatorSuffix, nop)

		_, err := d.Dispatch(ctx, []string{"first_missing", "second_missing"})
		require.Error(t, err)

		appErr, _ := apperrors.AsAppError(err)
		component, _ := appErr.Field(apperrors.FieldComponent)
		assert.Equal(t, "first_missing", component)
	})
}
