package commands

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupTelemetryToleratesMissingConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	tel := setupTelemetry(context.Background())
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	// shutting down the zero value is a no-op
	require.NoError(t, tel.Shutdown(context.Background()))
}
