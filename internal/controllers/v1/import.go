package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hearthledger/backend/internal/httputil"
	"github.com/hearthledger/backend/internal/importer"
	"github.com/hearthledger/backend/internal/models"
	hl_uuid "github.com/hearthledger/backend/internal/uuid"
)

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsImport)
		r.POST("", CreateImport)
	}

	// Preview
	{
		r.OPTIONS("/preview", OptionsImportPreview)
		r.POST("/preview", CreateImportPreview)
	}

	// Rollback
	{
		r.OPTIONS("/rollback", OptionsImportRollback)
		r.POST("/rollback", RollbackImport)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// duplicateTransactions finds existing transactions with the same import
// hash as the row. If any exist, their IDs are set in the
// DuplicateTransactionIDs field.
func duplicateTransactions(row *PreviewRow, householdID uuid.UUID) error {
	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	duplicateIDs := make([]uuid.UUID, 0)

	err := models.DB.Model(&models.Transaction{}).
		Where("household_id = ?", householdID).
		Where("import_hash = ?", row.ImportHash).
		Pluck("id", &duplicateIDs).Error
	if err != nil {
		return err
	}

	row.DuplicateTransactionIDs = duplicateIDs
	return nil
}

// match sets the category of the row to the one of the first rule that
// matches its payee. Rules have to be passed in priority order.
func match(row *PreviewRow, rules []models.MatchRule) {
	for _, rule := range rules {
		if rule.Matches(row.Payee) {
			ruleID := rule.ID
			categoryID := rule.CategoryID

			row.MatchRuleID = &ruleID
			row.CategoryID = &categoryID
			return
		}
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/preview [options]
func OptionsImportPreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import/rollback [options]
func OptionsImportRollback(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import preview
// @Description	Parses a CSV file and returns a preview of the rows to be imported together with transfer candidates between them
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ImportPreviewResponse
// @Failure		400			{object}	ImportPreviewResponse
// @Failure		404			{object}	ImportPreviewResponse
// @Failure		500			{object}	ImportPreviewResponse
// @Param			file		formData	file				true	"File to import"
// @Param			accountId	query		ImportPreviewQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/preview [post]
func CreateImportPreview(c *gin.Context) {
	var query ImportPreviewQuery
	err := c.ShouldBind(&query)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	if query.AccountID == hl_uuid.Nil {
		s := errAccountIDRequired.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".csv")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	rc := requestContext(c)

	// Verify that the account exists
	var account models.Account
	err = models.DB.Where("household_id = ?", rc.HouseholdID).First(&account, query.AccountID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	rows, err := importer.Parse(f, query.mapping())
	if err != nil {
		// importer.Parse returns a usable error already, no parsing necessary
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	for i := range rows {
		rows[i].AccountID = account.ID
	}

	candidates, err := importer.FindTransferCandidates(rows)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	rules, err := models.MatchRulesFor(models.DB, rc.HouseholdID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewResponse{
			Error: &s,
		})
		return
	}

	previewRows := make([]PreviewRow, 0, len(rows))
	for _, row := range rows {
		previewRow := PreviewRow{Row: row}

		if len(rules) > 0 {
			match(&previewRow, rules)
		}

		err = duplicateTransactions(&previewRow, rc.HouseholdID)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ImportPreviewResponse{
				Error: &s,
			})
			return
		}

		previewRows = append(previewRows, previewRow)
	}

	c.JSON(http.StatusOK, ImportPreviewResponse{
		Data: &ImportPreview{
			Rows:       previewRows,
			Candidates: candidates,
		},
	})
}

// @Summary		Import transactions
// @Description	Commits an import batch. Rows referenced by a confirmed transfer pair are created as the two legs of a transfer, all other rows become plain transactions. Failing rows are reported per item and do not abort the batch.
// @Tags			Import
// @Accept			json
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		403		{object}	ImportResponse
// @Failure		404		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			batch	body		importer.Batch	true	"Batch"
// @Router			/v1/import [post]
func CreateImport(c *gin.Context) {
	var batch importer.Batch

	// Bind data and return error if not possible
	err := httputil.BindData(c, &batch)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	rc := requestContext(c)
	if !rc.Role.AtLeast(models.RoleEditor) {
		e := models.ErrNoPermission.Error()
		c.JSON(status(models.ErrNoPermission), ImportResponse{
			Error: &e,
		})
		return
	}

	// All referenced accounts and categories must belong to the household
	_, err = householdAccounts(rc.HouseholdID, batchAccountIDs(batch))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	err = checkHouseholdCategories(rc.HouseholdID, batchCategoryIDs(batch))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	batch.HouseholdID = rc.HouseholdID
	batch.MemberID = rc.MemberID

	result, err := importer.Commit(models.DB, batch)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}

// @Summary		Roll back an import
// @Description	Deletes all transactions and transfers a committed import batch created. Rolling back an import that does not exist or was already rolled back is a no-op.
// @Tags			Import
// @Produce		json
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		403			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			importId	query		string	true	"ID of the import to roll back"
// @Router			/v1/import/rollback [post]
func RollbackImport(c *gin.Context) {
	var query ImportRollbackQuery
	if err := c.Bind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidQueryString.Error(),
		})
		return
	}

	if query.ImportID == hl_uuid.Nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errImportIDRequired.Error(),
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

	// An import belonging to another household must not be visible,
	// let alone be rolled back
	var foreign int64
	err := models.DB.Model(&models.Transaction{}).
		Where("import_id = ?", query.ImportID).
		Where("household_id != ?", rc.HouseholdID).
		Count(&foreign).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if foreign > 0 {
		err := fmt.Errorf("%w import matching your query", models.ErrResourceNotFound)
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = importer.Rollback(models.DB, query.ImportID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// batchAccountIDs returns the distinct account IDs a batch references.
func batchAccountIDs(batch importer.Batch) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, row := range batch.Rows {
		if !seen[row.AccountID] {
			seen[row.AccountID] = true
			ids = append(ids, row.AccountID)
		}
	}

	return ids
}

// batchCategoryIDs returns the distinct category IDs a batch references.
func batchCategoryIDs(batch importer.Batch) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, row := range batch.Rows {
		if row.CategoryID == nil || *row.CategoryID == uuid.Nil {
			continue
		}

		if !seen[*row.CategoryID] {
			seen[*row.CategoryID] = true
			ids = append(ids, *row.CategoryID)
		}
	}

	return ids
}

// checkHouseholdCategories verifies that all passed categories belong to
// the household.
func checkHouseholdCategories(householdID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	var count int64
	err := models.DB.Model(&models.Category{}).
		Where("household_id = ?", householdID).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count != int64(len(ids)) {
		return fmt.Errorf("%w category matching your query", models.ErrResourceNotFound)
	}

	return nil
}
