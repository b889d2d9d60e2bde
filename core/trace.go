package core

import (
	"log/slog"

	"github.com/jellydator/ttlcache/v3"
	"github.com/routelab/routesim/state"
)

type traceKey struct {
	node state.NodeId
	dst  state.NodeId
}

// Tracer emits debug events for route changes. Repeated events for the
// same (router, destination) pair are deduplicated within a TTL so a
// tight convergence loop does not drown the log. A nil Tracer is a
// no-op.
type Tracer struct {
	log   *slog.Logger
	dedup *ttlcache.Cache[traceKey, struct{}]
}

func NewTracer(log *slog.Logger) *Tracer {
	return &Tracer{
		log: log,
		dedup: ttlcache.New[traceKey, struct{}](
			ttlcache.WithTTL[traceKey, struct{}](state.TraceDedupTTL),
			ttlcache.WithDisableTouchOnHit[traceKey, struct{}](),
		),
	}
}

func (t *Tracer) RouteImproved(node, dst, nh state.NodeId, cost state.Cost) {
	if t == nil {
		return
	}
	key := traceKey{node, dst}
	if t.dedup.Get(key) != nil {
		return
	}
	t.dedup.Set(key, struct{}{}, ttlcache.DefaultTTL)
	t.log.Debug("route improved", "node", node, "dst", dst, "nh", nh, "cost", cost)
}

func (t *Tracer) RoutesComputed(node state.NodeId, routes int) {
	if t == nil {
		return
	}
	t.log.Debug("routes computed", "node", node, "routes", routes)
}

// Flush drops expired dedup entries. Called by the scheduler between
// ticks.
func (t *Tracer) Flush() {
	if t == nil {
		return
	}
	t.dedup.DeleteExpired()
}
