package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/abu-huda81/shop_backend/internal/apperr"
)

// GormRepo is the data-access layer. It is constructed once at startup with
// the shared *gorm.DB and returns apperr sentinels, never HTTP codes.
type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// translate maps storage errors into the typed taxonomy. Driver-level unique
// violations surface as conflicts, everything else unexpected is an
// integrity failure that handlers log without exposing.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case isUniqueViolation(err):
		return apperr.ErrConflict
	default:
		return fmt.Errorf("%w: %v", apperr.ErrIntegrity, err)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
