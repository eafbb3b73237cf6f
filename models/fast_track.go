package models

import (
	"time"

	"gorm.io/datatypes"
)

// UnknownCompanyName is stored as the name snapshot when the parent company
// has not been synced yet.
const UnknownCompanyName = "Unknown"

type FastTrack struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	EntryID            string         `json:"entry_id" gorm:"uniqueIndex;not null"`
	CompanyID          *uint          `json:"company_id" gorm:"index"`
	ParentRecordID     *string        `json:"parent_record_id"`
	Name               *string        `json:"name"`
	PotentialProgram   *bool          `json:"potential_program"`
	AddedToListAt      *time.Time     `json:"added_to_list_at"`
	KillReasons        *string        `json:"kill_reasons"`
	ContactStatus      *string        `json:"contact_status"`
	FirstVideocallDone *time.Time     `json:"first_videocall_done"`
	Risk               *string        `json:"risk"`
	Urgency            *string        `json:"urgency"`
	NextSteps          *string        `json:"next_steps"`
	Deadline           *time.Time     `json:"deadline"`
	Notes              *string        `json:"notes"`
	LastContacted      *time.Time     `json:"last_contacted"`
	LastModified       *time.Time     `json:"last_modified"`
	DateFirstContact   *time.Time     `json:"date_first_contact"`
	FastTrackStatus    *string        `json:"fast_track_status"`
	SignalsEvaluations datatypes.JSON `json:"signals_evaluations"`
	GreenFlagsSummary  *string        `json:"green_flags_summary"`
	RedFlagsSummary    *string        `json:"red_flags_summary"`
	SignalComments     *string        `json:"signal_comments"`
	SyncedAt           time.Time      `json:"synced_at"`

	Company *Company `json:"company,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}
