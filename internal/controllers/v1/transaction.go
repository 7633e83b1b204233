package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/centsible/backend/internal/classifier"
	"github.com/centsible/backend/internal/httputil"
	"github.com/centsible/backend/internal/importer"
	"github.com/centsible/backend/internal/metrics"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/provider"
)

// TransactionSource is the provider transactions are synced from. It
// is set during startup and replaced in tests.
var TransactionSource provider.Source

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
	}

	// Aggregations and imports
	{
		r.OPTIONS("/summary", OptionsTransactionSummary)
		r.GET("/summary", GetTransactionSummary)
		r.OPTIONS("/sync", OptionsTransactionSync)
		r.POST("/sync", SyncTransactions)
		r.OPTIONS("/import", OptionsTransactionImport)
		r.POST("/import", ImportTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/summary [options]
func OptionsTransactionSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/sync [options]
func OptionsTransactionSync(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions/import [options]
func OptionsTransactionImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Transaction{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// transactionQuery builds the shared query for the list and summary
// endpoints.
func transactionQuery(c *gin.Context) (*gorm.DB, TransactionQueryFilter, error) {
	var filter TransactionQueryFilter

	err := c.Bind(&filter)
	if err != nil {
		return nil, filter, err
	}

	q := models.DB.Order("date ASC, id ASC")

	if c.Request.URL.Query().Has("pending") {
		q = q.Where("pending = ?", filter.Pending)
	}

	if filter.Bucket != "" {
		bucket, err := classifier.ParseBucket(filter.Bucket)
		if err != nil {
			return nil, filter, err
		}
		q = q.Where("bucket = ?", bucket)
	}

	if !filter.Month.IsZero() {
		q = q.Where("date >= date(?) AND date < date(?)", filter.Month, filter.Month.AddDate(0, 1, 0))
	}

	return q, filter, nil
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			bucket	query	string	false	"Filter by the bucket the transaction was classified into"
// @Param			pending	query	bool	false	"Is the transaction pending?"
// @Param			month	query	string	false	"Only transactions in this month. Format: YYYY-MM"
// @Param			offset	query	uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	q, filter, err := transactionQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if filter.Limit != 0 {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	transactions := make([]models.Transaction, 0)
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: transactions,
		Pagination: &Pagination{
			Count:  len(transactions),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction summary
// @Description	Classifies the matching transactions and returns the sum and the transactions per bucket. Pending transactions are excluded.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		400	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/transactions/summary [get]
// @Param			month	query	string	false	"Only transactions in this month. Format: YYYY-MM"
func GetTransactionSummary(c *gin.Context) {
	q, _, err := transactionQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	rules, err := models.UserRules(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	input := make([]classifier.Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		input = append(input, transaction.ForClassification())
	}

	result := classifier.New(rules...).Run(input)

	data := newSummary(result)
	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}

// @Summary		Sync transactions
// @Description	Fetches transactions from the configured provider, classifies them and stores them. Transactions already known are updated when the provider's data changed.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	SyncResponse
// @Failure		500	{object}	SyncResponse
// @Failure		503	{object}	SyncResponse
// @Router			/v1/transactions/sync [post]
func SyncTransactions(c *gin.Context) {
	if TransactionSource == nil {
		s := errSyncNotConfigured.Error()
		c.JSON(http.StatusServiceUnavailable, SyncResponse{
			Error: &s,
		})
		return
	}

	rules, err := models.UserRules(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SyncResponse{
			Error: &s,
		})
		return
	}
	classify := classifier.New(rules...)

	var result SyncResult
	var cursor string

	for {
		var page []provider.Transaction
		page, cursor, err = TransactionSource.Transactions(c.Request.Context(), cursor)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusInternalServerError, SyncResponse{
				Error: &s,
			})
			return
		}

		for _, item := range page {
			transaction := models.Transaction{
				ExternalID:         item.ID,
				Descriptor:         item.Descriptor,
				ProviderCategories: item.Categories,
				Amount:             item.Amount,
				Date:               item.Date,
				Pending:            item.Pending,
			}
			transaction.Bucket = classify.Classify(transaction.ForClassification())

			var existing models.Transaction
			err = models.DB.Where(&models.Transaction{ExternalID: item.ID}).First(&existing).Error

			if errors.Is(err, models.ErrResourceNotFound) {
				err = models.DB.Create(&transaction).Error
				if err == nil {
					result.Synced++
					metrics.TransactionsSynced.Inc()
					metrics.TransactionsClassified.WithLabelValues(transaction.Bucket.String()).Inc()
				}
			} else if err == nil {
				// The provider may settle pending transactions or adjust
				// their data between syncs
				if existing.Pending != transaction.Pending ||
					!existing.Amount.Equal(transaction.Amount) ||
					existing.Descriptor != transaction.Descriptor {
					err = models.DB.Model(&existing).
						Select("Descriptor", "ProviderCategories", "Amount", "Date", "Pending", "Bucket").
						Updates(&transaction).Error
					if err == nil {
						result.Updated++
					}
				}
			}

			if err != nil {
				s := err.Error()
				c.JSON(status(err), SyncResponse{
					Error: &s,
				})
				return
			}
		}

		if cursor == "" {
			break
		}
	}

	c.JSON(http.StatusOK, SyncResponse{Data: &result})
}

// @Summary		Import transactions
// @Description	Imports transactions from a CSV file, classifies them and stores them. Rows that were already imported are skipped.
// @Tags			Transactions
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			file	formData	file	true	"The file to import"
// @Router			/v1/transactions/import [post]
func ImportTransactions(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		s := errNoFilePost.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	if !strings.HasSuffix(formFile.Filename, ".csv") {
		s := fmt.Sprintf("%s: .csv", errWrongFileSuffix)
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	f, err := formFile.Open()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}
	defer f.Close()

	transactions, err := importer.Parse(f)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{
			Error: &s,
		})
		return
	}

	rules, err := models.UserRules(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{
			Error: &s,
		})
		return
	}
	classify := classifier.New(rules...)

	var result ImportResult
	for _, transaction := range transactions {
		transaction.Bucket = classify.Classify(transaction.ForClassification())

		err = models.DB.Create(&transaction).Error
		if errors.Is(err, models.ErrTransactionIDNotUnique) {
			result.Skipped++
			continue
		}

		if err != nil {
			s := err.Error()
			c.JSON(status(err), ImportResponse{
				Error: &s,
			})
			return
		}

		result.Imported++
		metrics.TransactionsImported.Inc()
		metrics.TransactionsClassified.WithLabelValues(transaction.Bucket.String()).Inc()
	}

	c.JSON(http.StatusCreated, ImportResponse{Data: &result})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
