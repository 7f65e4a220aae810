// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor

import "github.com/famicore/gones/cpu"

// The debugHandler receives notifications from the cpu debugger and
// forwards them to the monitor.
type debugHandler struct {
	monitor *Monitor
}

func newDebugHandler(m *Monitor) *debugHandler {
	return &debugHandler{monitor: m}
}

func (h *debugHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.monitor.onBreakpoint(c, b)
}

func (h *debugHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.monitor.onDataBreakpoint(c, b)
}
