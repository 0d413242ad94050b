package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPlainLabel checks the ratio band boundaries.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected string
	}{
		{1.00, GoodValue},
		{0.90, GoodValue},
		{0.89, FairValue},
		{0.75, FairValue},
		{0.74, LowValue},
		{0.50, LowValue},
		{0.49, CriticalValue},
		{0.00, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.ratio))
		})
	}
}

// TestGetColorLabel checks the colored label carries the plain text.
func TestGetColorLabel(t *testing.T) {
	for _, ratio := range []float64{1.0, 0.8, 0.6, 0.2} {
		assert.Contains(t, GetColorLabel(ratio), GetPlainLabel(ratio))
	}
}

// TestSelectOutputFile checks stdout fallback and file creation.
func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path yields stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("path creates a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.NotEqual(t, os.Stdout, f)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})
}

// TestFormatRatio checks the percentage rendering.
func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "87.50%", FormatRatio(0.875, 2))
	assert.Equal(t, "87.5%", FormatRatio(0.875, 1))
	assert.Equal(t, "0.00%", FormatRatio(0, 2))
}

// TestFormatHours checks the hour rendering.
func TestFormatHours(t *testing.T) {
	assert.Equal(t, "21.00", FormatHours(21, 2))
	assert.Equal(t, "1.5", FormatHours(1.5, 1))
}

// TestTruncateLabel checks that long code labels lose their tail.
func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "402_Cambio de Turno", TruncateLabel("402_Cambio de Turno", 30))
	assert.Equal(t, "402_Cam...", TruncateLabel("402_Cambio de Turno", 10))
	assert.Equal(t, "402", TruncateLabel("402", 3))
}

// TestParseBoolString checks accepted and rejected boolean spellings.
func TestParseBoolString(t *testing.T) {
	trueValues := []string{"yes", "YES", "true", "True", "1"}
	for _, v := range trueValues {
		got, err := ParseBoolString(v)
		require.NoError(t, err)
		assert.True(t, got)
	}

	falseValues := []string{"no", "NO", "false", "False", "0"}
	for _, v := range falseValues {
		got, err := ParseBoolString(v)
		require.NoError(t, err)
		assert.False(t, got)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// TestGetStoreDBFilePath checks the default store path shape.
func TestGetStoreDBFilePath(t *testing.T) {
	path := GetStoreDBFilePath()
	assert.Contains(t, path, ".rigkpi_store.db")
}
