// Package prometheus exposes operation counters as a redline extension.
package prometheus

import (
	"errors"

	"github.com/fwojciec/redline"
	"github.com/prometheus/client_golang/prometheus"
)

// ExtensionID is the id the metrics extension registers under.
const ExtensionID = "metrics"

// noSource labels operations recorded without a source.
const noSource = "none"

// Compile-time interface verification.
var (
	_ redline.Extension = (*Extension)(nil)
	_ redline.Disposer  = (*Extension)(nil)
)

// Extension counts operations observed through the extension registry.
//
// Metrics:
//   - redline_operations_total{type,source} - operations appended to the log
//   - redline_history_events_total{event} - successful undo and redo calls
type Extension struct {
	reg        prometheus.Registerer
	operations *prometheus.CounterVec
	history    *prometheus.CounterVec
}

// NewExtension creates a metrics extension that registers its collectors
// with reg when the extension is registered.
func NewExtension(reg prometheus.Registerer) *Extension {
	return &Extension{
		reg: reg,
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redline_operations_total",
				Help: "Total number of operations appended to the log",
			},
			[]string{"type", "source"},
		),
		history: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redline_history_events_total",
				Help: "Total number of successful undo and redo calls",
			},
			[]string{"event"}, // "undo" or "redo"
		),
	}
}

// ID implements redline.Extension.
func (e *Extension) ID() string { return ExtensionID }

// Register implements redline.Extension.
func (e *Extension) Register(ctx redline.ExtensionContext) error {
	if err := e.reg.Register(e.operations); err != nil {
		return err
	}
	if err := e.reg.Register(e.history); err != nil {
		e.reg.Unregister(e.operations)
		return err
	}

	ctx.On(redline.EventAfterOperation, func(payload any) {
		ev, ok := payload.(redline.OperationEvent)
		if !ok {
			return
		}
		source := ev.Operation.Source()
		if source == "" {
			source = noSource
		}
		e.operations.WithLabelValues(string(ev.Operation.Type()), source).Inc()
	})
	ctx.On(redline.EventUndo, func(any) { e.history.WithLabelValues(redline.EventUndo).Inc() })
	ctx.On(redline.EventRedo, func(any) { e.history.WithLabelValues(redline.EventRedo).Inc() })
	return nil
}

// Dispose implements redline.Disposer by unregistering the collectors.
func (e *Extension) Dispose() {
	e.reg.Unregister(e.operations)
	e.reg.Unregister(e.history)
}

// IsAlreadyRegistered reports whether err is a duplicate collector
// registration.
func IsAlreadyRegistered(err error) bool {
	var are prometheus.AlreadyRegisteredError
	return errors.As(err, &are)
}
