package telemetry

import (
	"sort"
	"sync"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusStarting = "starting"
	HealthStatusDegraded = "degraded"
)

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status     string            `json:"status"`
	Components []ComponentHealth `json:"components,omitempty"`
}

type ComponentHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// HealthTracker aggregates readiness of named serving components. The
// overall status is ok only when every registered component is ready.
type HealthTracker struct {
	mu         sync.RWMutex
	components map[string]ComponentHealth
}

func NewHealthTracker() *HealthTracker {
	return &HealthTracker{components: make(map[string]ComponentHealth)}
}

// Register adds a component in the not-ready state.
func (h *HealthTracker) Register(name string) {
	h.set(ComponentHealth{Name: name, Reason: HealthStatusStarting})
}

func (h *HealthTracker) MarkReady(name string) {
	h.set(ComponentHealth{Name: name, Ready: true})
}

func (h *HealthTracker) MarkNotReady(name string, reason string) {
	h.set(ComponentHealth{Name: name, Reason: reason})
}

func (h *HealthTracker) set(c ComponentHealth) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.components[c.Name] = c
}

func (h *HealthTracker) Report() HealthReport {
	if h == nil {
		return HealthReport{Status: HealthStatusOK}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()

	report := HealthReport{Status: HealthStatusOK}
	for _, c := range h.components {
		report.Components = append(report.Components, c)
		if !c.Ready {
			report.Status = HealthStatusDegraded
		}
	}
	sort.Slice(report.Components, func(i, j int) bool {
		return report.Components[i].Name < report.Components[j].Name
	})
	return report
}
