package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
	"budgetdash/internal/pagination"
	"budgetdash/internal/services"
)

// ReplicateAction is the only bulk action PUT /budgets accepts.
const ReplicateAction = "replicate"

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
	now           Clock
}

// NewBudgetHandler creates a new BudgetHandler. now supplies the reference
// instant budget progress is measured at.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer, now Clock) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService, now: now}
}

// CreateBudgetRequest represents the request payload for creating a budget.
// Send budget_month, or period with start_date (and optionally end_date).
type CreateBudgetRequest struct {
	CategoryID  string               `json:"category_id" binding:"required,uuid"`
	Amount      decimal.Decimal      `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"200.00"`
	BudgetMonth *string              `json:"budget_month" binding:"omitempty,month_key" example:"2024-06"`
	Period      *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	CategoryID  *string              `json:"category_id" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal     `json:"amount" binding:"omitempty,gt=0" swaggertype:"string" example:"250.00"`
	BudgetMonth *string              `json:"budget_month" binding:"omitempty,month_key"`
	Period      *models.BudgetPeriod `json:"period" binding:"omitempty,budget_period"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
}

// BulkBudgetRequest represents the request payload of PUT /budgets.
type BulkBudgetRequest struct {
	Action      string `json:"action" binding:"required" example:"replicate"`
	TargetMonth string `json:"target_month" binding:"required" example:"2024-06"`
}

// ReplicateResponse is returned after a successful replication.
type ReplicateResponse struct {
	Message string          `json:"message"`
	Budgets []models.Budget `json:"budgets"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a month budget (budget_month) or a period budget (period, start_date, end_date) for an expense category
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.CreateBudget(services.BudgetInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		BudgetMonth: req.BudgetMonth,
		Period:      req.Period,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionCreate, services.ResourceBudget, budget.ID, c.ClientIP(),
		map[string]interface{}{"category_id": req.CategoryID, "amount": req.Amount.String(),
			"budget_month": req.BudgetMonth, "period": req.Period})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Description Paginated list of budgets
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       month       query string false "Budget month (YYYY-MM)"
// @Param       category_id query string false "Filter by category ID"
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	var filter services.BudgetFilter
	var err error
	if filter.Month, err = parseMonthQuery(c, "month"); err != nil {
		respondWithError(c, err)
		return
	}
	if filter.CategoryID, err = parseUUIDQuery(c, "category_id"); err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.budgetService.ListBudgets(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BulkUpdateBudgets handles bulk actions on the budget collection.
// @Summary     Replicate budgets
// @Description Copy every budget of the month before target_month into target_month. The target month must be empty.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body BulkBudgetRequest true "Action and target month"
// @Success     200 {object} ReplicateResponse "Budgets replicated"
// @Failure     400 {object} ErrorResponse "Unknown action or malformed month"
// @Failure     404 {object} ErrorResponse "No budgets in the source month"
// @Failure     409 {object} ErrorResponse "Target month already has budgets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [put]
func (h *BudgetHandler) BulkUpdateBudgets(c *gin.Context) {
	var req BulkBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	if req.Action != ReplicateAction {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("unsupported action %q", req.Action)))
		return
	}

	budgets, err := h.budgetService.ReplicateBudgets(req.TargetMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ids := make([]string, 0, len(budgets))
	for i := range budgets {
		ids = append(ids, budgets[i].ID)
	}
	h.auditService.Log(services.AuditActionReplicate, services.ResourceBudget, "", c.ClientIP(),
		map[string]interface{}{"target_month": req.TargetMonth, "budget_ids": ids})

	c.JSON(http.StatusOK, ReplicateResponse{
		Message: fmt.Sprintf("%d budget(s) replicated to %s", len(budgets), req.TargetMonth),
		Budgets: budgets,
	})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Update amount, category, or the fields of the budget's own shape
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     409 {object} ErrorResponse "Duplicate budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, services.BudgetUpdate{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		BudgetMonth: req.BudgetMonth,
		Period:      req.Period,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionUpdate, services.ResourceBudget, budget.ID, c.ClientIP(),
		map[string]interface{}{"amount": budget.Amount.String(), "category_id": budget.CategoryID})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionDelete, services.ResourceBudget, budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}

// GetBudgetProgress handles retrieving spending progress for a budget.
// @Summary     Get budget progress
// @Description Spending against the budget over the window it covers now
// @Tags        budgets
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetProgress "Budget progress"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id}/progress [get]
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.budgetService.GetBudgetProgress(budgetID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
