package schedule

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/clock"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/models"
)

// Result summarises one reconciliation of an equipment's schedule.
type Result struct {
	EquipmentID string
	Target      int
	Created     int
	Existing    int
}

// Summary aggregates a top-up over every equipment.
type Summary struct {
	Equipment int
	Created   int
	Failed    int
}

// Reconciler brings the stored services of an equipment in line with the
// dates implied by its current periodicity and anchor date.
type Reconciler struct {
	services      db.ServiceCollection
	equipment     db.EquipmentCollection
	clock         clock.Clock
	location      *time.Location
	horizonMonths int
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithHorizon sets how many months ahead of today services are generated.
func WithHorizon(months int) Option {
	return func(r *Reconciler) {
		if months > 0 {
			r.horizonMonths = months
		}
	}
}

// WithLocation sets the time zone that decides the current calendar date.
func WithLocation(loc *time.Location) Option {
	return func(r *Reconciler) {
		if loc != nil {
			r.location = loc
		}
	}
}

// NewReconciler creates a Reconciler writing to services. equipment is only
// read by ReconcileAll.
func NewReconciler(services db.ServiceCollection, equipment db.EquipmentCollection, clk clock.Clock, opts ...Option) *Reconciler {
	r := &Reconciler{
		services:      services,
		equipment:     equipment,
		clock:         clk,
		location:      time.Local,
		horizonMonths: DefaultHorizonMonths,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today is the current calendar date in the reconciler's time zone, at midnight UTC.
func (r *Reconciler) Today() time.Time {
	return models.DateOf(r.clock.Now().In(r.location))
}

// TargetDates returns the dates the schedule of e should contain from today on.
func (r *Reconciler) TargetDates(e models.Equipment) ([]time.Time, error) {
	anchor, err := models.ParseDate(e.FirstServiceOn)
	if err != nil {
		return nil, apperr.Validationf("fecha_primer_servicio: %v", err)
	}
	if !e.Periodicity.IsValid() {
		log.WithFields(log.Fields{
			"equipo_id":    e.ID,
			"periodicidad": e.Periodicity,
		}).Warn("Unknown periodicity, scheduling monthly")
	}
	return ComputeUpcoming(anchor, e.Periodicity, r.horizonMonths, r.Today()), nil
}

// Reconcile creates an unauthorized service for every target date of e that
// has none yet. Existing services are never modified. Inserts are not
// transactional: on error the services created so far remain and the
// returned Result counts them; running Reconcile again is safe.
func (r *Reconciler) Reconcile(ctx context.Context, e models.Equipment) (Result, error) {
	result := Result{EquipmentID: e.ID}
	dates, err := r.TargetDates(e)
	if err != nil {
		return result, err
	}
	result.Target = len(dates)

	for _, date := range dates {
		day := models.FormatDate(date)
		created, err := r.services.InsertServiceIfAbsent(ctx, e.ID, day)
		if err != nil {
			return result, errors.Wrapf(err, "schedule service for %s on %s", e.ID, day)
		}
		if created {
			result.Created++
		} else {
			result.Existing++
		}
	}

	log.WithFields(log.Fields{
		"equipo_id": e.ID,
		"target":    result.Target,
		"created":   result.Created,
		"existing":  result.Existing,
	}).Debug("Reconciled service schedule")
	return result, nil
}

// ReconcileAll tops up the schedule of every stored equipment. A failing
// equipment does not stop the others; the combined error is returned.
func (r *Reconciler) ReconcileAll(ctx context.Context) (Summary, error) {
	var summary Summary
	equipment, err := r.equipment.FindEquipment(ctx)
	if err != nil {
		return summary, errors.Wrap(err, "list equipment")
	}

	var combined error
	for _, e := range equipment {
		if err := ctx.Err(); err != nil {
			return summary, errors.CombineErrors(combined, err)
		}
		summary.Equipment++
		res, err := r.Reconcile(ctx, e)
		summary.Created += res.Created
		if err != nil {
			summary.Failed++
			log.WithError(err).WithField("equipo_id", e.ID).Error("Failed to top up schedule")
			combined = errors.CombineErrors(combined, err)
		}
	}

	log.WithFields(log.Fields{
		"equipment": summary.Equipment,
		"created":   summary.Created,
		"failed":    summary.Failed,
	}).Info("Schedule top-up completed")
	return summary, combined
}

// RunTopUp calls ReconcileAll every interval until ctx is done.
func (r *Reconciler) RunTopUp(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if _, err := r.ReconcileAll(ctx); err != nil {
				log.WithError(err).Warn("Periodic schedule top-up finished with errors")
			}
		}
	}
}
