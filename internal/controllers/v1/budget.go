package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
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

	// Edit sessions
	{
		r.OPTIONS("/:id/edits", OptionsBudgetEdits)
		r.POST("/:id/edits", EditBudget)
	}
}

// defaultAllocation is the starting allocation for budgets created
// with ?auto=true.
var defaultAllocation = []models.Category{
	{Name: "Housing", Color: "#FF6384", CategoryType: classifier.BucketRent, Percentage: decimal.NewFromInt(30)},
	{Name: "Food", Color: "#36A2EB", CategoryType: classifier.BucketFood, Percentage: decimal.NewFromInt(15)},
	{Name: "Transportation", Color: "#FFCE56", CategoryType: classifier.BucketTransportation, Percentage: decimal.NewFromInt(10)},
	{Name: "Utilities", Color: "#4BC0C0", CategoryType: classifier.BucketUtilities, Percentage: decimal.NewFromInt(10)},
	{Name: "Recreation", Color: "#9966FF", CategoryType: classifier.BucketRecreation, Percentage: decimal.NewFromInt(10)},
	{Name: "Savings", Color: "#FF9F40", CategoryType: classifier.BucketSavings, Percentage: decimal.NewFromInt(15)},
	{Name: "Misc", Color: "#C9CBCF", CategoryType: classifier.BucketOther, Percentage: decimal.NewFromInt(10)},
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
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
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Budget{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id}/edits [options]
func OptionsBudgetEdits(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Budget{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Create budget
// @Description	Creates a new budget. With the auto parameter set, the budget starts with a recommended allocation.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Param			auto	query		bool				false	"Create the budget with the recommended starting allocation"
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

	var params struct {
		Auto bool `form:"auto"`
	}
	_ = c.Bind(&params)

	// The final http status. Will be modified when errors occur
	s := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model()

		err = models.DB.Create(&budget).Error
		if err != nil {
			s = r.appendError(err, s)
			continue
		}

		if params.Auto {
			err = createDefaultAllocation(models.DB, budget)
			if err != nil {
				s = r.appendError(err, s)
				continue
			}
		}

		data, err := newBudget(c, models.DB, budget)
		if err != nil {
			s = r.appendError(err, s)
			continue
		}
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(s, r)
}

// createDefaultAllocation creates the recommended starting categories
// for a budget, with amounts derived from the budget's income.
func createDefaultAllocation(db *gorm.DB, budget models.Budget) error {
	income := decimal.NewFromInt(budget.Income)

	for _, category := range defaultAllocation {
		category.BudgetID = budget.ID
		category.Amount = income.Mul(category.Percentage).Div(decimal.NewFromInt(100)).Round(2)

		err := db.Create(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Get budgets
// @Description	Returns a list of budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			offset	query	uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	q := models.DB.Order("name ASC")

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 budgets and set the limit
	limit := 50
	if filter.Limit != 0 {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		apiResource, err := newBudget(c, models.DB, budget)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{
				Error: &s,
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
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data, err := newBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&budget).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	r, err := newBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Delete budget
// @Description	Deletes a budget and all its categories
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
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

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Categories reference the budget, delete them first
	tx := models.DB.Begin()

	err = tx.Where(&models.Category{BudgetID: budget.ID}).Delete(&models.Category{}).Error
	if err != nil {
		tx.Rollback()
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = tx.Delete(&budget).Error
	if err != nil {
		tx.Rollback()
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}

func newBudget(c *gin.Context, db *gorm.DB, model models.Budget) (Budget, error) {
	url := httputil.RequestPathV1(c)

	budget := Budget{
		Budget: model,
		Links: BudgetLinks{
			Self:       fmt.Sprintf("%s/budgets/%d", url, model.ID),
			Categories: fmt.Sprintf("%s/categories?budget=%d", url, model.ID),
			Edits:      fmt.Sprintf("%s/budgets/%d/edits", url, model.ID),
		},
	}

	categories, err := model.Categories(db)
	if err != nil {
		return Budget{}, err
	}
	budget.Categories = categories

	return budget, nil
}
