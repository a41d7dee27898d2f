package database

import (
	"errors"

	"github.com/folioshare/folioshare/errs"
	"github.com/folioshare/folioshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Toggle flips the like state for (userID, portfolioID) and reports the
// resulting state: true when the portfolio ends up liked. A concurrent
// double-toggle can race the read; the composite unique constraint is the
// backstop, and a duplicate-key failure on create is treated as "already
// liked".
func (r *LikeRepo) Toggle(userID, portfolioID uuid.UUID) (bool, error) {
	var existing models.Like
	err := r.db.Where("user_id = ? AND portfolio_id = ?", userID, portfolioID).First(&existing).Error
	if err == nil {
		if err := r.db.Delete(&models.Like{}, "id = ?", existing.ID).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := models.Like{UserID: userID, PortfolioID: portfolioID}
	if err := r.db.Create(&like).Error; err != nil {
		if errs.IsUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// HasLiked reports whether the user has liked the portfolio.
func (r *LikeRepo) HasLiked(userID, portfolioID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND portfolio_id = ?", userID, portfolioID).
		Count(&count).Error
	return count > 0, err
}

// CountByPortfolio returns the total like count of a portfolio.
func (r *LikeRepo) CountByPortfolio(portfolioID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("portfolio_id = ?", portfolioID).
		Count(&count).Error
	return count, err
}
