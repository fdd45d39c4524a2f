package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records cart and catalog activity.
type Storefront struct {
	mutations      *prometheus.CounterVec
	restores       *prometheus.CounterVec
	writeFailures  prometheus.Counter
	catalogUpdates *prometheus.CounterVec
}

// New registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder that drops every observation.
func New(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart operations that changed cart state.",
	}, []string{"op"})
	restores := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_snapshot_restores_total",
		Help: "Cart initializations by snapshot outcome.",
	}, []string{"outcome"})
	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_slot_write_failures_total",
		Help: "Cart snapshots that could not be written to durable storage.",
	})
	catalogUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_updates_total",
		Help: "Catalog snapshots received from the products collection.",
	}, []string{"result"})
	reg.MustRegister(mutations, restores, writeFailures, catalogUpdates)
	return &Storefront{
		mutations:      mutations,
		restores:       restores,
		writeFailures:  writeFailures,
		catalogUpdates: catalogUpdates,
	}
}

func (s *Storefront) CartMutation(op string) {
	if s == nil || s.mutations == nil {
		return
	}
	s.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (s *Storefront) SnapshotRestore(outcome string) {
	if s == nil || s.restores == nil {
		return
	}
	s.restores.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (s *Storefront) SlotWriteFailure() {
	if s == nil || s.writeFailures == nil {
		return
	}
	s.writeFailures.Inc()
}

// CatalogUpdate counts snapshot deliveries; ok=false marks a listener error.
func (s *Storefront) CatalogUpdate(ok bool) {
	if s == nil || s.catalogUpdates == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	s.catalogUpdates.WithLabelValues(result).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
