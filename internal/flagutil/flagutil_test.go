package flagutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostPort(t *testing.T) {
	tests := []struct {
		in      string
		want    HostPort
		wantErr bool
	}{
		{in: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{in: "[::1]:80", want: "[::1]:80"},
		{in: ":9000", want: ":9000"},
		{in: "localhost", wantErr: true},
		{in: "127.0.0.1:", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			parsed, err := ParseHostPort(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.Equal(t, tt.want, parsed)
			}

			var hp HostPort
			err = hp.UnmarshalFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hp)
		})
	}
}

func TestLogLevel(t *testing.T) {
	var l LogLevel
	assert.False(t, l.IsSet())

	require.NoError(t, l.UnmarshalFlag("debug"))
	assert.Equal(t, slog.LevelDebug, l.Level)
	assert.True(t, l.IsSet())

	assert.Error(t, (&LogLevel{}).UnmarshalFlag("chatty"))
}
