package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harakeishi/conflo/pkg/types"
)

func TestStructuredLoggerFactory_Create(t *testing.T) {
	factory := NewStructuredLoggerFactory(true)

	log, err := factory.Create(types.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestStructuredLogger_DerivedLoggersKeepDetailed(t *testing.T) {
	factory := NewStructuredLoggerFactory(true)
	base, err := factory.Create(types.LogConfig{Level: "info", Format: "text"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		derived Logger
	}{
		{name: "WithField", derived: base.WithField("key", "value")},
		{name: "WithFields", derived: base.WithFields(types.Field{Key: "key", Value: "value"})},
		{name: "WithError", derived: base.WithError(fmt.Errorf("boom"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structured, ok := tt.derived.(*StructuredLogger)
			require.True(t, ok)
			assert.True(t, structured.detailed)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "ERROR", parseLogLevel("error").String())
	// 未知のレベルはinfoにフォールバック
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}
