package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attio-sync/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store applies synced records to the local tables. Every write runs in a
// single transaction and is rolled back in full on failure.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to one transaction. Store methods
// called on tx join it instead of opening their own.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&Store{db: db, now: s.now})
	})
}

// FindCompany returns nil without error when no row has that id_attio.
func (s *Store) FindCompany(ctx context.Context, idAttio string) (*models.Company, error) {
	var company models.Company
	err := s.db.WithContext(ctx).Where("id_attio = ?", idAttio).Take(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find company %s: %w", idAttio, err)
	}
	return &company, nil
}

// UpsertCompany creates the row for c.IDAttio or overwrites every column of
// the existing one. It reports whether a row was created.
func (s *Store) UpsertCompany(ctx context.Context, c *models.Company) (bool, error) {
	if c.IDAttio == "" {
		return false, fmt.Errorf("upsert company: empty id_attio")
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Company
		err := tx.Select("id").Where("id_attio = ?", c.IDAttio).Take(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		c.SyncedAt = s.now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			c.ID = 0
			return tx.Omit(clause.Associations).Create(c).Error
		}

		c.ID = existing.ID
		return tx.Omit(clause.Associations).Save(c).Error
	})
	if err != nil {
		return false, fmt.Errorf("upsert company %s: %w", c.IDAttio, err)
	}
	return created, nil
}

// UpsertFastTrack is UpsertCompany for list entries, keyed by entry_id.
func (s *Store) UpsertFastTrack(ctx context.Context, ft *models.FastTrack) (bool, error) {
	if ft.EntryID == "" {
		return false, fmt.Errorf("upsert fast track: empty entry_id")
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.FastTrack
		err := tx.Select("id").Where("entry_id = ?", ft.EntryID).Take(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		ft.SyncedAt = s.now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			ft.ID = 0
			return tx.Omit(clause.Associations).Create(ft).Error
		}

		ft.ID = existing.ID
		return tx.Omit(clause.Associations).Save(ft).Error
	})
	if err != nil {
		return false, fmt.Errorf("upsert fast track %s: %w", ft.EntryID, err)
	}
	return created, nil
}

// DeleteCompany removes the company and clears the link on its fast tracks.
// Deleting an unknown id is not an error; the affected row count is 0.
func (s *Store) DeleteCompany(ctx context.Context, idAttio string) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := tx.Model(&models.Company{}).Select("id").Where("id_attio = ?", idAttio)
		if err := tx.Model(&models.FastTrack{}).
			Where("company_id IN (?)", ids).
			Update("company_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id_attio = ?", idAttio).Delete(&models.Company{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete company %s: %w", idAttio, err)
	}
	return affected, nil
}

func (s *Store) DeleteFastTrack(ctx context.Context, entryID string) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("entry_id = ?", entryID).Delete(&models.FastTrack{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete fast track %s: %w", entryID, err)
	}
	return affected, nil
}
