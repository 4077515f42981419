package registry

import "time"

// NewBuiltinProvider は組み込みコンポーネントのバリデーターを登録した
// StaticProviderを返します。ホストランタイムはここに自前のユニットを
// 追加登録できます。
func NewBuiltinProvider() *StaticProvider {
	provider := NewStaticProvider()

	provider.Register("logging"+DefaultValidatorSuffix, func() (Validator, error) {
		return NewSchemaValidator(loggingSchema()), nil
	})
	provider.Register("listener"+DefaultValidatorSuffix, func() (Validator, error) {
		return NewSchemaValidator(listenerSchema()), nil
	})
	provider.Register("storage"+DefaultValidatorSuffix, func() (Validator, error) {
		return NewStructValidator(
			func() interface{} { return &StorageOptions{MaxConnections: 10} },
			[]string{"driver", "path", "max_connections", "busy_timeout"},
		), nil
	})

	return provider
}

// loggingSchema はloggingコンポーネントのスキーマです。
func loggingSchema() Schema {
	return Schema{
		"level": {
			Kind:    KindEnum,
			Enum:    []string{"debug", "error", "info", "warn"},
			Default: "info",
		},
		"format": {
			Kind:    KindEnum,
			Enum:    []string{"json", "text"},
			Default: "text",
		},
		"file": {
			Kind: KindString,
		},
	}
}

// listenerSchema はlistenerコンポーネントのスキーマです。
func listenerSchema() Schema {
	return Schema{
		"host": {
			Kind:    KindString,
			Default: "127.0.0.1",
		},
		"port": {
			Kind:     KindInt,
			Required: true,
		},
		"protocol": {
			Kind:    KindEnum,
			Enum:    []string{"tcp", "udp"},
			Default: "tcp",
		},
		"read_timeout": {
			Kind:    KindDuration,
			Default: 30 * time.Second,
		},
		"tags": {
			Kind: KindAny,
		},
	}
}

// StorageOptions はstorageコンポーネントのオプション構造体です。
type StorageOptions struct {
	Driver         string        `mapstructure:"driver"`
	Path           string        `mapstructure:"path"`
	MaxConnections int           `mapstructure:"max_connections"`
	BusyTimeout    time.Duration `mapstructure:"busy_timeout"`
}
