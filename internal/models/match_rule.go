package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MatchRule assigns a category to imported transactions whose payee
// matches a glob pattern. Rules are applied in priority order, lower
// numbers first.
type MatchRule struct {
	DefaultModel
	HouseholdID uuid.UUID `json:"householdId"`
	Household   Household `json:"-"`
	Priority    uint      `json:"priority" example:"1"`
	Match       string    `json:"match" example:"REWE*"`
	CategoryID  uuid.UUID `json:"categoryId"`
	Category    Category  `json:"-"`
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	return nil
}

// Matches reports whether the rule's pattern matches the payee.
func (r MatchRule) Matches(payee string) bool {
	return glob.Glob(r.Match, payee)
}

// MatchRulesFor loads the match rules of a household in priority order.
// With equal priorities the pattern decides for reproducibility.
func MatchRulesFor(db *gorm.DB, householdID uuid.UUID) ([]MatchRule, error) {
	var rules []MatchRule

	err := db.
		Where("household_id = ?", householdID).
		Order("priority ASC, match ASC").
		Find(&rules).Error

	return rules, err
}
