package repositories

import (
	"github.com/visaflow/backend/internal/models"
	"gorm.io/gorm"
)

// SweepRepository records notification check runs
type SweepRepository interface {
	RecordSweep(run *models.SweepRun) error
	LatestSweep() (*models.SweepRun, error)
}

type postgresSweepRepository struct {
	db *gorm.DB
}

func NewPostgresSweepRepository(db *gorm.DB) SweepRepository {
	return &postgresSweepRepository{db: db}
}

func (r *postgresSweepRepository) RecordSweep(run *models.SweepRun) error {
	return r.db.Create(run).Error
}

func (r *postgresSweepRepository) LatestSweep() (*models.SweepRun, error) {
	var run models.SweepRun
	if err := r.db.Order("ran_at DESC").First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}
