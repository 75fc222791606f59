package format

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 1, 23, 15, 4, 5, 0, time.UTC)

func setupConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".manubotrc")
	t.Setenv("MANUBOT_CONFIG", path)
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
}

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		name        string
		date, clock string
		wantFull    string
		wantShort   string
	}{
		{"defaults", "", "", "Jan 23 15:04:05", "Jan 23 15:04"},
		{"us 12h", "mm/dd/yyyy", "12h", "01/23/2024 3:04:05 PM", "01/23 3:04 PM"},
		{"iso", "yyyy-mm-dd", "24h", "2024-01-23 15:04:05", "01-23 15:04"},
		{"european", "dd/mm/yyyy", "24h", "23/01/2024 15:04:05", "23/01 15:04"},
		{"custom layout", "Jan 02, 2006", "24h", "Jan 23, 2024 15:04:05", "Jan 23 15:04"},
		{"unknown clock falls back to 24h", "yyyy-mm-dd", "odd", "2024-01-23 15:04:05", "01-23 15:04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LayoutFor(tt.date, tt.clock)
			require.Equal(t, tt.wantFull, l.Full(testTime))
			require.Equal(t, tt.wantShort, l.DateTimeShort(testTime))
		})
	}
}

func TestDateTime_Configured(t *testing.T) {
	setupConfig(t, "display_date=yyyy-mm-dd\ndisplay_time=12h\n")
	require.Equal(t, "2024-01-23 3:04 PM", DateTime(testTime))
	require.Equal(t, "2024-01-23 3:04:05 PM", Full(testTime))
}

func TestDateTime_Default(t *testing.T) {
	setupConfig(t, "")
	require.Equal(t, "Jan 23 15:04", DateTime(testTime))
}

func TestDuration(t *testing.T) {
	require.Equal(t, "0ms", Duration(-time.Second))
	require.Equal(t, "850ms", Duration(850*time.Millisecond))
	require.Equal(t, "4.2s", Duration(4200*time.Millisecond))
	require.Equal(t, "3m05s", Duration(3*time.Minute+5*time.Second))
}

func TestAgo(t *testing.T) {
	require.Equal(t, "just now", Ago(testTime, testTime.Add(10*time.Second)))
	require.Equal(t, "5m ago", Ago(testTime, testTime.Add(5*time.Minute)))
	require.Equal(t, "3h ago", Ago(testTime, testTime.Add(3*time.Hour)))
	require.Equal(t, "2d ago", Ago(testTime, testTime.Add(49*time.Hour)))
}
