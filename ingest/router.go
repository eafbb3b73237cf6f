package ingest

import (
	"context"
	"fmt"

	"attio-sync/attio"
	"attio-sync/database"

	"k8s.io/klog/v2"
)

type Outcome string

const (
	OutcomeRejected       Outcome = "rejected"
	OutcomeCompanySynced  Outcome = "company_synced"
	OutcomeCompanyDeleted Outcome = "company_deleted"
	OutcomeEntrySynced    Outcome = "entry_synced"
	OutcomeEntryDeleted   Outcome = "entry_deleted"
	OutcomeFetchFailed    Outcome = "fetch_failed"
	OutcomeStoreFailed    Outcome = "store_failed"
	OutcomeUnmatched      Outcome = "unmatched"
)

// Fetcher reads live records from Attio.
type Fetcher interface {
	FetchCompany(ctx context.Context, recordID string) (*attio.Record, error)
	FetchEntry(ctx context.Context, entryID string) (*attio.Entry, error)
}

// Router dispatches one classified event to the company, fast track or
// delete flow. It keeps no state between events.
type Router struct {
	fetcher Fetcher
	store   *database.Store
}

func NewRouter(fetcher Fetcher, store *database.Store) *Router {
	return &Router{fetcher: fetcher, store: store}
}

// Dispatch processes ev. The returned error is informational: callers log
// it and still acknowledge the delivery.
func (r *Router) Dispatch(ctx context.Context, ev Event) (Outcome, error) {
	log := klog.FromContext(ctx).WithValues("eventType", ev.EventType())

	if ev.Actor() != WorkspaceMember {
		log.V(1).Info("ignoring event from non member actor", "actor", ev.Actor())
		return OutcomeRejected, nil
	}

	switch e := ev.(type) {
	case CompanyEvent:
		return r.company(klog.NewContext(ctx, log.WithValues("recordID", e.RecordID)), e)
	case EntryEvent:
		return r.entry(klog.NewContext(ctx, log.WithValues("entryID", e.EntryID)), e)
	default:
		log.V(1).Info("event matches no flow")
		return OutcomeUnmatched, nil
	}
}

func (r *Router) company(ctx context.Context, e CompanyEvent) (Outcome, error) {
	log := klog.FromContext(ctx)

	if e.Deleted {
		n, err := r.store.DeleteCompany(ctx, e.RecordID)
		if err != nil {
			return OutcomeStoreFailed, err
		}
		log.Info("company deleted", "rows", n)
		return OutcomeCompanyDeleted, nil
	}

	rec, err := r.fetcher.FetchCompany(ctx, e.RecordID)
	if err != nil {
		return OutcomeFetchFailed, err
	}

	c, report := MapCompany(e.RecordID, rec)
	if len(report) > 0 {
		log.V(2).Info("company attributes without value", "report", report)
	}

	created, err := r.store.UpsertCompany(ctx, c)
	if err != nil {
		return OutcomeStoreFailed, err
	}
	log.Info("company synced", "created", created)
	return OutcomeCompanySynced, nil
}

func (r *Router) entry(ctx context.Context, e EntryEvent) (Outcome, error) {
	log := klog.FromContext(ctx)

	if e.Deleted {
		n, err := r.store.DeleteFastTrack(ctx, e.EntryID)
		if err != nil {
			return OutcomeStoreFailed, err
		}
		log.Info("fast track deleted", "rows", n)
		return OutcomeEntryDeleted, nil
	}

	entry, err := r.fetcher.FetchEntry(ctx, e.EntryID)
	if err != nil {
		return OutcomeFetchFailed, err
	}

	var created bool
	err = r.store.Transaction(ctx, func(tx *database.Store) error {
		ft, report, err := MapFastTrack(ctx, e.EntryID, entry, tx)
		if err != nil {
			return err
		}
		if len(report) > 0 {
			log.V(2).Info("fast track attributes without value", "report", report)
		}
		if ft.CompanyID == nil {
			log.Info("parent company not synced yet", "parentRecordID", entry.ParentRecordID)
		}

		created, err = tx.UpsertFastTrack(ctx, ft)
		return err
	})
	if err != nil {
		return OutcomeStoreFailed, fmt.Errorf("sync fast track: %w", err)
	}
	log.Info("fast track synced", "created", created)
	return OutcomeEntrySynced, nil
}
