package connectivity

import (
	"context"
	"time"

	remoteRepo "slotsync/database/repository/remote"
	"slotsync/utils"

	"go.uber.org/zap"
)

// Status carries one connectivity transition.
type Status struct {
	Connected bool
}

// Prober produces connectivity transitions by pinging the remote store on
// an interval. OnChange fires once per transition (and once with the
// initial probe result), never per probe.
type Prober struct {
	Remote   remoteRepo.SyncClient
	Interval time.Duration
	OnChange func(Status)
}

// Run probes until the context is cancelled.
func (p *Prober) Run(ctx context.Context) {
	logger := utils.GetLogger()

	interval := p.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	known := false
	var connected bool
	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		now := p.Remote.Ping(probeCtx) == nil
		if known && now == connected {
			return
		}
		known = true
		connected = now
		logger.Info("Connectivity changed", zap.Bool("connected", connected))
		p.OnChange(Status{Connected: connected})
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
