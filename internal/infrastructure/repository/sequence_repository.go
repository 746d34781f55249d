package repository

import (
	"context"
	"errors"

	"github.com/sparesdesk/sparesdesk-api/internal/domain/entity"
	domainRepo "github.com/sparesdesk/sparesdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new invoice sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the counter for the period and returns the new value. The
// increment is a single atomic UPDATE, so concurrent callers serialize on the
// row lock and can never be handed the same number. The transaction commits
// independently of the checkout: once returned, a number is consumed whether
// or not the checkout that asked for it commits.
func (r *sequenceRepository) Next(ctx context.Context, period string) (int64, error) {
	var next int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := entity.InvoiceSequence{Period: period}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.InvoiceSequence{}).
			Where("period = ?", period).
			Update("counter", gorm.Expr("counter + 1")).Error; err != nil {
			return err
		}

		// The row is locked by the update above, so this read sees the value
		// this transaction produced
		var seq entity.InvoiceSequence
		if err := tx.First(&seq, "period = ?", period).Error; err != nil {
			return err
		}
		next = seq.Counter
		return nil
	})

	return next, err
}

// Current returns the last issued number for the period, zero if none
func (r *sequenceRepository) Current(ctx context.Context, period string) (int64, error) {
	var seq entity.InvoiceSequence
	err := r.db.WithContext(ctx).First(&seq, "period = ?", period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return seq.Counter, err
}
