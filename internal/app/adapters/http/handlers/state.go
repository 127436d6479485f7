package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"

	"streamoverlay/internal/app/ports"
)

var startApp = time.Now()

type runtimeInfo struct {
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemSysMB      uint64  `json:"mem_sys_mb"`
	Goroutines    int     `json:"goroutines"`
}

type stateResponse struct {
	Overlay ports.OverlaySnapshot `json:"overlay"`
	Runtime runtimeInfo           `json:"runtime"`
}

func (h *Handlers) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// StateHandler dumps the overlay snapshot together with process
// diagnostics, for poking at a running instance.
func (h *Handlers) StateHandler(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	percent, _ := cpu.Percent(0, false)
	if len(percent) == 0 {
		percent = append(percent, 0)
	}

	c.JSON(http.StatusOK, stateResponse{
		Overlay: h.state.Snapshot(),
		Runtime: runtimeInfo{
			UptimeSeconds: int64(time.Since(startApp).Seconds()),
			CPUPercent:    percent[0],
			MemSysMB:      m.Sys / 1024 / 1024,
			Goroutines:    runtime.NumGoroutine(),
		},
	})
}
