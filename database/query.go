package database

import (
	"context"
	"errors"

	"attio-sync/models"

	"gorm.io/gorm"
)

type CompanyFilter struct {
	Stage       string
	Fund        string
	Responsible string
	Limit       int
}

type FastTrackFilter struct {
	Status    string
	Urgency   string
	CompanyID string // id_attio of the parent company
	Unlinked  bool
	Limit     int
}

type Stats struct {
	Companies          int64 `json:"companies"`
	FastTracks         int64 `json:"fast_tracks"`
	UnlinkedFastTracks int64 `json:"unlinked_fast_tracks"`
	PotentialProgram   int64 `json:"potential_program"`
}

func limitOrDefault(n int) int {
	if n <= 0 || n > 500 {
		return 50
	}
	return n
}

func (s *Store) ListCompanies(ctx context.Context, f CompanyFilter) ([]models.Company, error) {
	query := s.db.WithContext(ctx).Model(&models.Company{})

	if f.Stage != "" {
		query = query.Where("stage = ?", f.Stage)
	}
	if f.Fund != "" {
		query = query.Where("fund = ?", f.Fund)
	}
	if f.Responsible != "" {
		query = query.Where("responsible = ?", f.Responsible)
	}

	var companies []models.Company
	err := query.Order("synced_at DESC").Limit(limitOrDefault(f.Limit)).Find(&companies).Error
	return companies, err
}

// GetCompany loads a company with its fast tracks. The second return value is
// false when the company does not exist.
func (s *Store) GetCompany(ctx context.Context, idAttio string) (*models.Company, bool, error) {
	var company models.Company
	err := s.db.WithContext(ctx).
		Preload("FastTracks").
		Where("id_attio = ?", idAttio).
		Take(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &company, true, nil
}

func (s *Store) ListFastTracks(ctx context.Context, f FastTrackFilter) ([]models.FastTrack, error) {
	query := s.db.WithContext(ctx).Model(&models.FastTrack{})

	if f.Status != "" {
		query = query.Where("fast_track_status = ?", f.Status)
	}
	if f.Urgency != "" {
		query = query.Where("urgency = ?", f.Urgency)
	}
	if f.CompanyID != "" {
		query = query.Where("parent_record_id = ?", f.CompanyID)
	}
	if f.Unlinked {
		query = query.Where("company_id IS NULL")
	}

	var tracks []models.FastTrack
	err := query.Order("synced_at DESC").Limit(limitOrDefault(f.Limit)).Find(&tracks).Error
	return tracks, err
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	var stats Stats

	if err := db.Model(&models.Company{}).Count(&stats.Companies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FastTrack{}).Count(&stats.FastTracks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FastTrack{}).Where("company_id IS NULL").Count(&stats.UnlinkedFastTracks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FastTrack{}).Where("potential_program = ?", true).Count(&stats.PotentialProgram).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
