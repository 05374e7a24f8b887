// File: internal/repository/otp/gorm_code_store.go
package otp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

// GormCodeStore implements CodeStore on a relational database via GORM.
type GormCodeStore struct {
	db *gorm.DB
}

// NewGormCodeStore creates a new GORM-backed code store.
func NewGormCodeStore(db *gorm.DB) *GormCodeStore {
	return &GormCodeStore{db: db}
}

// FindByIdentity finds the live code for an identity.
func (s *GormCodeStore) FindByIdentity(ctx context.Context, identity string) (*domain.OneTimeCode, error) {
	var code domain.OneTimeCode
	err := s.db.WithContext(ctx).
		Where("identity = ?", identity).
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// Replace deletes any existing code for the identity and inserts the new one
// inside a single transaction.
func (s *GormCodeStore) Replace(ctx context.Context, code *domain.OneTimeCode) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identity = ?", code.Identity).
			Delete(&domain.OneTimeCode{}).Error; err != nil {
			return err
		}
		return tx.Create(code).Error
	})
}

// DeleteIfMatch issues a conditional delete and reports whether a row went
// away. RowsAffected is what makes concurrent redemption safe: only one of two
// racing callers observes a removal.
func (s *GormCodeStore) DeleteIfMatch(ctx context.Context, identity, code string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("identity = ? AND code = ?", identity, code).
		Delete(&domain.OneTimeCode{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
