package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType determines which transactions a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// PathSeparator joins the names of a category's ancestors into its
// materialized path.
const PathSeparator = ":"

// Category is a node in the household's category tree.
//
// The Path column materializes the names of all ancestors so that a
// subtree can be selected with a single LIKE filter. It is maintained
// on every rename and reparent, see Move.
type Category struct {
	DefaultModel
	HouseholdID uuid.UUID    `json:"householdId" gorm:"uniqueIndex:category_household_path"`
	Household   Household    `json:"-"`
	ParentID    *uuid.UUID   `json:"parentId"`
	Name        string       `json:"name" example:"Groceries"`
	Type        CategoryType `json:"type" example:"expense"`
	Path        string       `json:"path" gorm:"uniqueIndex:category_household_path" example:"Essentials:Groceries"`
	Icon        string       `json:"icon" example:"cart" default:""`
	Color       string       `json:"color" example:"#36a3eb" default:""`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Type != CategoryIncome && c.Type != CategoryExpense {
		return ErrCategoryTypeInvalid
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.ParentID == nil {
		c.Path = c.Name
		return nil
	}

	var parent Category
	err := tx.First(&parent, *c.ParentID).Error
	if err != nil {
		return err
	}

	if parent.HouseholdID != c.HouseholdID {
		return ErrResourceNotFound
	}

	if parent.Type != c.Type {
		return ErrCategoryTypeMismatch
	}

	c.Path = parent.Path + PathSeparator + c.Name
	return nil
}

// Move renames and/or reparents the category and recomputes the
// materialized paths of the whole subtree. A nil parentID makes the
// category a root category.
//
// Descendants are fixed up with an explicit work list so that deep
// trees do not grow the stack.
func (c *Category) Move(db *gorm.DB, name string, parentID *uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.Name
	}

	return db.Transaction(func(tx *gorm.DB) error {
		path := name

		if parentID != nil {
			var parent Category
			err := tx.First(&parent, *parentID).Error
			if err != nil {
				return err
			}

			if parent.HouseholdID != c.HouseholdID {
				return ErrResourceNotFound
			}

			// The new parent must not be the category itself or part of
			// its subtree
			if parent.ID == c.ID || parent.Path == c.Path || strings.HasPrefix(parent.Path, c.Path+PathSeparator) {
				return ErrCategoryCycle
			}

			if parent.Type != c.Type {
				return ErrCategoryTypeMismatch
			}

			path = parent.Path + PathSeparator + name
		}

		c.Name = name
		c.ParentID = parentID
		c.Path = path

		err := tx.Model(c).Select("Name", "ParentID", "Path").Updates(map[string]any{
			"name":      c.Name,
			"parent_id": c.ParentID,
			"path":      c.Path,
		}).Error
		if err != nil {
			return err
		}

		// Fix up all descendant paths, breadth-first
		queue := []Category{*c}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			var children []Category
			err := tx.Where("parent_id = ?", current.ID).Find(&children).Error
			if err != nil {
				return err
			}

			for i := range children {
				children[i].Path = current.Path + PathSeparator + children[i].Name
				err := tx.Model(&children[i]).Update("path", children[i].Path).Error
				if err != nil {
					return err
				}
				queue = append(queue, children[i])
			}
		}

		return nil
	})
}

// HasChildren reports whether the category has child categories.
func (c Category) HasChildren(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&Category{}).Where("parent_id = ?", c.ID).Count(&count).Error
	return count > 0, err
}

// SubtreeIDs returns the IDs of the category and all its descendants.
func (c Category) SubtreeIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&Category{}).
		Where("household_id = ?", c.HouseholdID).
		Where("path = ? OR path LIKE ?", c.Path, c.Path+PathSeparator+"%").
		Pluck("id", &ids).Error

	return ids, err
}
