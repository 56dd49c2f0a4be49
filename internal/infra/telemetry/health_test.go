package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthTracker(t *testing.T) {
	tracker := NewHealthTracker()
	require.Equal(t, HealthStatusOK, tracker.Report().Status)

	tracker.Register("mcp")
	tracker.Register("config")
	report := tracker.Report()
	require.Equal(t, HealthStatusDegraded, report.Status)
	require.Equal(t, "config", report.Components[0].Name)
	require.Equal(t, HealthStatusStarting, report.Components[0].Reason)

	tracker.MarkReady("mcp")
	tracker.MarkReady("config")
	require.Equal(t, HealthStatusOK, tracker.Report().Status)

	tracker.MarkNotReady("mcp", "shutting down")
	require.Equal(t, HealthStatusDegraded, tracker.Report().Status)
}

func TestHealthTracker_Nil(t *testing.T) {
	var tracker *HealthTracker
	tracker.MarkReady("mcp")
	require.Equal(t, HealthStatusOK, tracker.Report().Status)
}
