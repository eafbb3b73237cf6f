package models

import (
	"time"

	"gorm.io/datatypes"
)

// Labels is a set of option titles. A nil pointer is stored as NULL, so an
// empty set is never persisted.
type Labels = datatypes.JSONSlice[string]

func NewLabels(titles []string) *Labels {
	if len(titles) == 0 {
		return nil
	}
	l := Labels(titles)
	return &l
}

type Company struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	IDAttio              string     `json:"id_attio" gorm:"column:id_attio;uniqueIndex;not null"`
	Name                 *string    `json:"name"`
	Domains              *string    `json:"domains"`
	AttioCreatedAt       *time.Time `json:"created_at" gorm:"column:created_at"`
	OneLiner             *string    `json:"one_liner"`
	Stage                *string    `json:"stage"`
	RoundSize            *int64     `json:"round_size"`
	CurrentValuation     *int64     `json:"current_valuation"`
	DeckURL              *string    `json:"deck_url" gorm:"column:deck_url"`
	Reference            *string    `json:"reference"`
	ReferenceExplanation *string    `json:"reference_explanation"`
	DateSourced          *time.Time `json:"date_sourced"`
	Responsible          *string    `json:"responsible"`
	CompanyType          *string    `json:"company_type"`
	Fund                 *string    `json:"fund"`
	BusinessModel        *Labels    `json:"business_model"`
	ConstitutionLocation *Labels    `json:"constitution_location"`
	BusinessType         *Labels    `json:"business_type"`
	Comments             *string    `json:"comments"`
	SyncedAt             time.Time  `json:"synced_at"`

	FastTracks []FastTrack `json:"fast_tracks,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
}
