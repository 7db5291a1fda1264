package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    slog.Level
		wantErr bool
	}{
		{name: "Debug", in: "debug", want: slog.LevelDebug},
		{name: "UpperWarn", in: "WARN", want: slog.LevelWarn},
		{name: "Warning", in: "warning", want: slog.LevelWarn},
		{name: "Error", in: " error ", want: slog.LevelError},
		{name: "Empty", in: "", want: slog.LevelInfo, wantErr: true},
		{name: "Unknown", in: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCommonLogger_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := CommonLogger(&Config{
		AppName: "tests",
		Level:   slog.LevelInfo,
		JSON:    true,
		Writer:  buf,
	})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("visible", slog.String(KeyGuildID, "123"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "visible", rec["msg"])
	require.Equal(t, "tests", rec[KeyApp])
	require.Equal(t, "123", rec[KeyGuildID])
}

func TestCommonLogger_NilConfig(t *testing.T) {
	_, err := CommonLogger(nil)
	require.Error(t, err)
}
