package logging_test

import (
	"testing"

	"github.com/plus3/puffin/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, encoding := range []string{"", "json", "console"} {
		t.Run("encoding "+encoding, func(t *testing.T) {
			logger, err := logging.New("warn", encoding)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
			assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}

	_, err := logging.New("loud", "json")
	assert.Error(t, err)

	_, err = logging.New("info", "xml")
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, logging.OrNop(nil))
	l := logging.Nop()
	assert.Same(t, l, logging.OrNop(l))
}
