package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"timetrack_backend/internal/feature/auth/domain"
	"timetrack_backend/internal/feature/auth/domain/entity"
	"timetrack_backend/internal/feature/auth/usecase"
)

// verificationPostgres is the Postgres implementation of VerificationCodeRepository.
type verificationPostgres struct {
	db *gorm.DB
}

// Compile-time check that verificationPostgres implements VerificationCodeRepository.
var _ usecase.VerificationCodeRepository = (*verificationPostgres)(nil)

// NewVerificationPostgres creates a new instance of verificationPostgres with
// the given gorm.DB connection.
func NewVerificationPostgres(db *gorm.DB) *verificationPostgres {
	return &verificationPostgres{db: db}
}

// Create persists a new verification code.
func (r *verificationPostgres) Create(ctx context.Context, code *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// FindByCode retrieves a verification code by its code value.
// It returns domain.ErrCodeNotFound if no such code exists.
func (r *verificationPostgres) FindByCode(ctx context.Context, code string) (*entity.VerificationCode, error) {
	var v entity.VerificationCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, err
	}
	return &v, nil
}

// MarkUsed flags the code as consumed.
func (r *verificationPostgres) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entity.VerificationCode{}).
		Where("id = ?", id).Update("used", true).Error
}
