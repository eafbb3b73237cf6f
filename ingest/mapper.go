package ingest

import (
	"context"
	"fmt"
	"time"

	"attio-sync/attio"
	"attio-sync/models"

	"gorm.io/datatypes"
)

// Report records why mapped attributes came back empty, keyed by attribute.
type Report map[string]attio.Reason

func (r Report) note(attr string, reason attio.Reason) {
	if reason != attio.ReasonOK {
		r[attr] = reason
	}
}

// fieldReader reads typed values out of a value container and notes in the
// report why any attribute came back empty.
type fieldReader struct {
	values attio.Values
	report Report
}

func newFieldReader(v attio.Values) fieldReader {
	return fieldReader{values: v, report: Report{}}
}

func (f fieldReader) text(attr, key string, mode attio.Mode) *string {
	s, reason := f.values.String(key, mode)
	f.report.note(attr, reason)
	return s
}

func (f fieldReader) integer(attr, key string) *int64 {
	n, reason := f.values.Int(key)
	f.report.note(attr, reason)
	return n
}

func (f fieldReader) boolean(attr, key string) *bool {
	b, reason := f.values.Bool(key)
	f.report.note(attr, reason)
	return b
}

func (f fieldReader) timestamp(attr, key string) *time.Time {
	ts, reason := f.values.Time(key)
	f.report.note(attr, reason)
	return ts
}

func (f fieldReader) document(attr, key string) datatypes.JSON {
	raw, reason := f.values.JSON(key)
	f.report.note(attr, reason)
	return datatypes.JSON(raw)
}

func (f fieldReader) labels(attr, key string) *models.Labels {
	titles, reason := f.values.OptionTitles(key)
	f.report.note(attr, reason)
	return models.NewLabels(titles)
}

// MapCompany builds the full attribute set for a company record. The second
// argument of each read is the key Attio assigned to the attribute and must
// be kept exactly as it is.
func MapCompany(recordID string, rec *attio.Record) (*models.Company, Report) {
	f := newFieldReader(rec.Values)
	c := &models.Company{
		IDAttio:              recordID,
		Name:                 f.text("name", "name", attio.Plain),
		Domains:              f.text("domains", "domains", attio.Domain),
		AttioCreatedAt:       f.timestamp("created_at", "created_at"),
		OneLiner:             f.text("one_liner", "one_liner", attio.Plain),
		Stage:                f.text("stage", "stage", attio.Option),
		RoundSize:            f.integer("round_size", "round_size"),
		CurrentValuation:     f.integer("current_valuation", "current_valuation"),
		DeckURL:              f.text("deck_url", "deck_url", attio.Plain),
		Reference:            f.text("reference", "reference_6", attio.Option),
		ReferenceExplanation: f.text("reference_explanation", "reference_explanation", attio.Plain),
		DateSourced:          f.timestamp("date_sourced", "date_sourced"),
		Responsible:          f.text("responsible", "responsible", attio.Option),
		CompanyType:          f.text("company_type", "company_type_4", attio.Option),
		Fund:                 f.text("fund", "fund_7", attio.Option),
		BusinessModel:        f.labels("business_model", "business_model_4"),
		ConstitutionLocation: f.labels("constitution_location", "constitution_location_8"),
		BusinessType:         f.labels("business_type", "business_type"),
		Comments:             f.text("comments", "comments", attio.Plain),
	}
	return c, f.report
}

// mapFastTrackValues reads the list entry attributes. "las_contacted" is the
// key as it exists in the workspace, typo included.
func mapFastTrackValues(entryID string, v attio.Values) (*models.FastTrack, Report) {
	f := newFieldReader(v)
	ft := &models.FastTrack{
		EntryID:            entryID,
		PotentialProgram:   f.boolean("potential_program", "potential_program"),
		AddedToListAt:      f.timestamp("added_to_list_at", "created_at"),
		KillReasons:        f.text("kill_reasons", "kill_reasons", attio.Plain),
		ContactStatus:      f.text("contact_status", "contact_status", attio.Option),
		FirstVideocallDone: f.timestamp("first_videocall_done", "first_videocall_done"),
		Risk:               f.text("risk", "risk", attio.Plain),
		Urgency:            f.text("urgency", "urgency", attio.Option),
		NextSteps:          f.text("next_steps", "next_steps", attio.Plain),
		Deadline:           f.timestamp("deadline", "deadline"),
		Notes:              f.text("notes", "notes", attio.Plain),
		LastContacted:      f.timestamp("last_contacted", "las_contacted"),
		LastModified:       f.timestamp("last_modified", "last_modified"),
		DateFirstContact:   f.timestamp("date_first_contact", "date_first_contact_1"),
		FastTrackStatus:    f.text("fast_track_status", "fast_track_status_6", attio.Status),
		SignalsEvaluations: f.document("signals_evaluations", "signals_evaluations"),
		GreenFlagsSummary:  f.text("green_flags_summary", "green_flags_summary", attio.Plain),
		RedFlagsSummary:    f.text("red_flags_summary", "red_flags_summary", attio.Plain),
		SignalComments:     f.text("signal_comments", "signal_comments", attio.Plain),
	}
	return ft, f.report
}

// CompanyLookup resolves a parent company by its Attio record id. A nil
// company with a nil error means it has not been synced.
type CompanyLookup interface {
	FindCompany(ctx context.Context, idAttio string) (*models.Company, error)
}

// MapFastTrack builds the full attribute set for a list entry and links it
// to its parent company if that company is already stored. The link is not
// revisited when the company shows up later.
func MapFastTrack(ctx context.Context, entryID string, entry *attio.Entry, companies CompanyLookup) (*models.FastTrack, Report, error) {
	ft, report := mapFastTrackValues(entryID, entry.EntryValues)

	unknown := models.UnknownCompanyName
	ft.Name = &unknown
	if entry.ParentRecordID == "" {
		return ft, report, nil
	}

	parent := entry.ParentRecordID
	ft.ParentRecordID = &parent

	c, err := companies.FindCompany(ctx, parent)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve parent company %s: %w", parent, err)
	}
	if c != nil {
		ft.CompanyID = &c.ID
		ft.Name = c.Name
	}
	return ft, report, nil
}
