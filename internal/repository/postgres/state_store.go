package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/casey/kickball-cup/internal/domain"
	"github.com/casey/kickball-cup/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// stateRecordID is the fixed primary key: one tournament, one row.
const stateRecordID = 1

type stateRecord struct {
	ID        uint           `gorm:"primaryKey"`
	Blob      datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (stateRecord) TableName() string {
	return "tournament_state"
}

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&stateRecord{}); err != nil {
		return nil, err
	}

	return db, nil
}

// StateStore keeps the tournament aggregate in a single JSONB row.
type StateStore struct {
	db *gorm.DB
}

func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Load(ctx context.Context) (*domain.TournamentState, error) {
	var rec stateRecord
	err := s.db.WithContext(ctx).First(&rec, stateRecordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStateNotFound
		}
		return nil, err
	}

	var state domain.TournamentState
	if err := json.Unmarshal(rec.Blob, &state); err != nil {
		return nil, err
	}
	state.Normalize()

	return &state, nil
}

func (s *StateStore) Save(ctx context.Context, state *domain.TournamentState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return err
	}

	rec := stateRecord{
		ID:        stateRecordID,
		Blob:      datatypes.JSON(blob),
		UpdatedAt: time.Now(),
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob", "updated_at"}),
		}).
		Create(&rec).Error
}

func (s *StateStore) Delete(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Delete(&stateRecord{}, stateRecordID).Error
}
