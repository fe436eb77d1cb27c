package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/models"
	"github.com/hearthledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgets)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}

	// Computed state
	{
		r.OPTIONS("/:id/compute", OptionsBudgetCompute)
		r.GET("/:id/compute", GetBudgetCompute)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/compute [options]
func OptionsBudgetCompute(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	rc := requestContext(c)

	var budget models.Budget
	err = models.DB.Where("household_id = ?", rc.HouseholdID).First(&budget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	data, err := newBudget(c, models.DB, budget)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Compute budget
// @Description	Returns the computed state of the budget: the window, the spent amount, the carryover from previous windows and the available amount
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetComputeResponse
// @Failure		400		{object}	BudgetComputeResponse
// @Failure		404		{object}	BudgetComputeResponse
// @Failure		500		{object}	BudgetComputeResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			asOf	query		string	false	"Date to compute the budget state for, YYYY-MM-DD. Defaults to today."
// @Router			/v1/budgets/{id}/compute [get]
func GetBudgetCompute(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetComputeResponse{
			Error: &e,
		})
		return
	}

	asOf := types.DateOf(time.Now())
	if raw, ok := c.GetQuery("asOf"); ok {
		asOf, err = types.ParseDate(raw)
		if err != nil {
			e := errAsOfInvalid.Error()
			c.JSON(http.StatusBadRequest, BudgetComputeResponse{
				Error: &e,
			})
			return
		}
	}

	rc := requestContext(c)

	var budget models.Budget
	err = models.DB.Where("household_id = ?", rc.HouseholdID).First(&budget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetComputeResponse{
			Error: &e,
		})
		return
	}

	result, err := budget.Compute(models.DB, asOf)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetComputeResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetComputeResponse{Data: &result})
}

// @Summary		Get budgets
// @Description	Returns a list of budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			period		query	string	false	"Filter by period"
// @Param			direction	query	string	false	"Filter by direction"
// @Param			category	query	string	false	"Filter by category ID, 'null' returns budgets without a category filter"
// @Param			rollover	query	bool	false	"Does the budget roll over?"
// @Param			offset		query	uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	if filter.Period != "" {
		if !slices.Contains([]models.BudgetPeriod{
			models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly, models.PeriodYearly, models.PeriodCustom,
		}, filter.Period) {
			s := errPeriodFilter.Error()
			c.JSON(http.StatusBadRequest, BudgetListResponse{
				Error: &s,
			})
			return
		}
	}

	rc := requestContext(c)

	q := models.DB.
		Order("sort_order ASC, name ASC").
		Where("household_id = ?", rc.HouseholdID).
		Where(filter.model(), queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	// "null" returns budgets that track all categories
	if filter.Category == "null" {
		q = q.Where("category_id IS NULL")
	} else if filter.Category != "" {
		id, err := httputil.UUIDFromString(filter.Category)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, BudgetListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("category_id = ?", id)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 budgets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		apiResource, err := newBudget(c, models.DB, budget)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create budgets
// @Description	Creates new budgets
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		403		{object}	BudgetCreateResponse
// @Failure		404		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	rc := requestContext(c)
	if !rc.Role.AtLeast(models.RoleEditor) {
		e := models.ErrNoPermission.Error()
		c.JSON(status(models.ErrNoPermission), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model(rc.HouseholdID)

		// The category the budget tracks must belong to the household
		if budget.CategoryID != nil {
			var category models.Category
			err := models.DB.Where("household_id = ?", rc.HouseholdID).First(&category, *budget.CategoryID).Error
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}

		accounts, err := householdAccounts(rc.HouseholdID, editable.AccountIDs)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Omit("Accounts").Create(&budget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		if len(accounts) > 0 {
			err = models.DB.Model(&budget).Association("Accounts").Replace(accounts)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
		}

		data, err := newBudget(c, models.DB, budget)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	rc := requestContext(c)
	if !rc.Role.AtLeast(models.RoleEditor) {
		e := models.ErrNoPermission.Error()
		c.JSON(status(models.ErrNoPermission), BudgetResponse{
			Error: &e,
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("household_id = ?", rc.HouseholdID).First(&budget, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	// The category the budget tracks must belong to the household
	if data.CategoryID != nil && *data.CategoryID != uuid.Nil {
		var category models.Category
		err := models.DB.Where("household_id = ?", rc.HouseholdID).First(&category, *data.CategoryID).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	// The account set is an association, not a column
	if idx := slices.Index(updateFields, any("AccountIDs")); idx >= 0 {
		updateFields = slices.Delete(updateFields, idx, idx+1)

		accounts, err := householdAccounts(rc.HouseholdID, data.AccountIDs)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}

		err = models.DB.Model(&budget).Association("Accounts").Replace(accounts)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	if len(updateFields) > 0 {
		err = models.DB.Model(&budget).Select("", updateFields...).Updates(data.model(rc.HouseholdID)).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &e,
			})
			return
		}
	}

	apiResource, err := newBudget(c, models.DB, budget)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	rc := requestContext(c)
	if !rc.Role.AtLeast(models.RoleEditor) {
		c.JSON(status(models.ErrNoPermission), httpError{
			Error: models.ErrNoPermission.Error(),
		})
		return
	}

	var budget models.Budget
	err = models.DB.Where("household_id = ?", rc.HouseholdID).First(&budget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// householdAccounts loads the accounts for a set of IDs and verifies
// that all of them belong to the household.
func householdAccounts(householdID uuid.UUID, ids []uuid.UUID) ([]models.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var accounts []models.Account
	err := models.DB.
		Where("household_id = ?", householdID).
		Where("id IN ?", ids).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, fmt.Errorf("%w account matching your query", models.ErrResourceNotFound)
	}

	return accounts, nil
}
