package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/reconciler"
)

// EditOperation is a single step of an edit session. Which fields are
// read depends on the operation.
type EditOperation struct {
	Op           string            `json:"op" example:"changePercentage"` // One of changeIncome, changePercentage, changeAmount, addCategory, removeCategory, setType, setColor
	ID           int64             `json:"id" example:"4"`                // ID of the category the operation applies to. Negative IDs refer to categories added earlier in the same request.
	Income       int64             `json:"income" example:"2500"`         // The new income for changeIncome
	Value        string            `json:"value" example:"30"`            // The raw input for changePercentage and changeAmount
	Name         string            `json:"name" example:"Pets"`           // The category name for addCategory
	Color        string            `json:"color" example:"#36A2EB"`       // The chart color for setColor
	CategoryType classifier.Bucket `json:"categoryType" example:"other"`  // The category type for setType
}

type BudgetEditRequest struct {
	Operations []EditOperation `json:"operations"` // Operations applied in order
}

// @Summary		Edit budget allocation
// @Description	Applies a list of edit operations to the budget and its categories. The whole list is validated and saved together: if any operation or the final allocation is invalid, nothing is changed.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			edit	body		BudgetEditRequest	true	"Edit operations"
// @Router			/v1/budgets/{id}/edits [post]
func EditBudget(c *gin.Context) {
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

	var request BudgetEditRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	if len(request.Operations) == 0 {
		s := errEditNoOperations.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{
			Error: &s,
		})
		return
	}

	state, err := budget.EditState(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	session := reconciler.NewSession(state)

	// Clients use their own negative placeholder IDs for categories they
	// add. They are mapped to the session's IDs here so later operations
	// can reference them.
	aliases := make(map[int64]int64)
	resolve := func(id int64) int64 {
		if sessionID, ok := aliases[id]; ok {
			return sessionID
		}
		return id
	}

	for _, operation := range request.Operations {
		switch operation.Op {
		case "changeIncome":
			session.ChangeIncome(operation.Income)
		case "changePercentage":
			err = session.ChangePercentage(resolve(operation.ID), operation.Value)
		case "changeAmount":
			err = session.ChangeAmount(resolve(operation.ID), operation.Value)
		case "addCategory":
			var id int64
			id, err = session.AddCategory(operation.Name)
			if err == nil && operation.ID < 0 {
				aliases[operation.ID] = id
			}
		case "removeCategory":
			err = session.RemoveCategory(resolve(operation.ID))
		case "setType":
			err = session.SetType(resolve(operation.ID), operation.CategoryType)
		case "setColor":
			err = session.SetColor(resolve(operation.ID), operation.Color)
		default:
			err = fmt.Errorf("%w: %q", errEditOperationUnknown, operation.Op)
		}

		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetResponse{
				Error: &s,
			})
			return
		}
	}

	saved, deleted, err := session.Save()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	err = persistEdit(budget, saved, deleted)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	// Re-read so the response contains the IDs the database assigned
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

// persistEdit writes the result of a saved edit session to the
// database in a single transaction.
func persistEdit(budget models.Budget, saved reconciler.Budget, deleted []int64) error {
	tx := models.DB.Begin()

	err := tx.Model(&budget).Update("income", saved.Income).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, allocation := range saved.Allocations {
		category := models.CategoryFromAllocation(budget.ID, allocation)

		if category.ID > 0 {
			err = tx.Model(&models.Category{Model: models.Model{ID: category.ID}}).
				Select("Name", "Color", "CategoryType", "Percentage", "Amount").
				Updates(&category).Error
		} else {
			err = tx.Create(&category).Error
		}

		if err != nil {
			tx.Rollback()
			return err
		}
	}

	if len(deleted) > 0 {
		err = tx.Delete(&models.Category{}, deleted).Error
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
