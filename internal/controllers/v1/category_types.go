package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/models"
)

type CategoryEditable struct {
	Name     string              `json:"name" example:"Groceries" default:""`
	Type     models.CategoryType `json:"type" example:"expense"`
	ParentID *uuid.UUID          `json:"parentId" example:"c3d84155-b9d1-4e5a-b123-5d4b1a9d8159"` // ID of the parent category, null for root categories
	Icon     string              `json:"icon" example:"cart" default:""`
	Color    string              `json:"color" example:"#36a3eb" default:""`
}

// model returns the database resource for the API representation of the editable fields
func (editable CategoryEditable) model(householdID uuid.UUID) models.Category {
	return models.Category{
		HouseholdID: householdID,
		Name:        editable.Name,
		Type:        editable.Type,
		ParentID:    editable.ParentID,
		Icon:        editable.Icon,
		Color:       editable.Color,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/v1/categories/3b1ea324-d438-4419-882a-2fc91f71defe"`                     // The category itself
	Transactions string `json:"transactions" example:"https://example.com/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91f71defe"` // Transactions referencing the category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Path  string        `json:"path" example:"Essentials:Groceries"` // Materialized path of the category in the tree
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:     model.Name,
			Type:     model.Type,
			ParentID: model.ParentID,
			Icon:     model.Icon,
			Color:    model.Color,
		},
		Path: model.Path,
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CategoryResponse `json:"data"`                                                          // List of created Categories
}

func (t *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this category
	Data  *Category `json:"data"`                                                          // The Category data, if creation was successful
}

type CategoryQueryFilter struct {
	Name   string              `form:"name" filterField:"false"`   // Name of the category, fuzzy matched
	Type   models.CategoryType `form:"type"`                       // Type of the category
	Parent string              `form:"parent" filterField:"false"` // ID of the parent category, "null" for root categories
	Offset uint                `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int                 `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Type: f.Type,
	}
}
