package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{input: "debug", want: DEBUG},
		{input: "info", want: INFO},
		{input: "warn", want: WARN},
		{input: "warning", want: WARN},
		{input: "error", want: ERROR},
		{input: "fatal", want: FATAL},
		{input: "ERROR", want: ERROR},
		{input: "unknown", want: INFO},
		{input: "", want: INFO},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.input), "level %q", tt.input)
	}
}

func TestNew(t *testing.T) {
	for _, level := range []LogLevel{DEBUG, INFO, WARN, ERROR} {
		l, err := New(level)
		assert.NoError(t, err)
		assert.NotNil(t, l)
	}
}
