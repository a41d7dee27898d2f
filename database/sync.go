package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// diffValues computes the minimal insert/delete sets that turn current into
// target. Values present in both are left untouched. Duplicates and ordering
// in either input are ignored.
func diffValues(current, target []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, v := range current {
		currentSet[v] = struct{}{}
	}
	targetSet := make(map[string]struct{}, len(target))
	for _, v := range target {
		targetSet[v] = struct{}{}
	}

	for v := range targetSet {
		if _, ok := currentSet[v]; !ok {
			toAdd = append(toAdd, v)
		}
	}
	for v := range currentSet {
		if _, ok := targetSet[v]; !ok {
			toRemove = append(toRemove, v)
		}
	}
	return toAdd, toRemove
}

// syncChildSet reconciles a portfolio's valued child rows (skills, languages)
// against the submitted target set inside the caller's transaction. column is
// the value column of the child table; build constructs a new row for an
// added value.
func syncChildSet[T any](tx *gorm.DB, portfolioID uuid.UUID, column string, current, target []string, build func(value string) T) error {
	toAdd, toRemove := diffValues(current, target)

	if len(toRemove) > 0 {
		err := tx.Where("portfolio_id = ? AND "+column+" IN ?", portfolioID, toRemove).
			Delete(new(T)).Error
		if err != nil {
			return err
		}
	}

	if len(toAdd) > 0 {
		rows := make([]T, 0, len(toAdd))
		for _, v := range toAdd {
			rows = append(rows, build(v))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	return nil
}
