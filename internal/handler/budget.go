package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marco0212/wedding-tracker/internal/middleware"
	"github.com/marco0212/wedding-tracker/internal/models"
	"github.com/marco0212/wedding-tracker/internal/util"
	"github.com/marco0212/wedding-tracker/pkg/metrics"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BudgetHandler serves the budget ledger CRUD and summary aggregation.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

// ---------- request/response shapes ----------

type createBudgetReq struct {
	Category     string `json:"category"`
	ItemName     string `json:"itemName"`
	BudgetAmount int64  `json:"budgetAmount"`
	ActualAmount int64  `json:"actualAmount"`
	IsPaid       bool   `json:"isPaid"`
	Notes        string `json:"notes"`
}

type updateBudgetReq struct {
	Category     *string               `json:"category"`
	ItemName     *string               `json:"itemName"`
	BudgetAmount *int64                `json:"budgetAmount"`
	ActualAmount *int64                `json:"actualAmount"`
	IsPaid       *bool                 `json:"isPaid"`
	Notes        util.Optional[string] `json:"notes"`
}

type budgetResp struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"userId"`
	Category     string    `json:"category"`
	ItemName     string    `json:"itemName"`
	BudgetAmount int64     `json:"budgetAmount"`
	ActualAmount int64     `json:"actualAmount"`
	IsPaid       bool      `json:"isPaid"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// toBudgetResp maps a stored row to the camelCase API shape.
func toBudgetResp(b *models.Budget) budgetResp {
	return budgetResp{
		ID:           b.ID,
		UserID:       b.UserID,
		Category:     b.Category,
		ItemName:     b.ItemName,
		BudgetAmount: b.BudgetAmount,
		ActualAmount: b.ActualAmount,
		IsPaid:       b.IsPaid,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
	}
}

// ---------- list ----------

// ListBudgets returns every line item, category ascending then newest first.
// Reads are not scoped to the requesting user (single-household deployment).
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	var budgets []models.Budget
	if err := h.DB.
		Order("category ASC, created_at DESC, id DESC").
		Find(&budgets).Error; err != nil {
		util.Internal(c, "list budgets", err)
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}
	c.JSON(http.StatusOK, items)
}

// ---------- create ----------

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Category and item name are required")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.Category == "" || req.ItemName == "" {
		util.Error(c, http.StatusBadRequest, "Category and item name are required")
		return
	}
	if util.ValidateAmount(req.BudgetAmount) != nil || util.ValidateAmount(req.ActualAmount) != nil {
		util.Error(c, http.StatusBadRequest, "Amounts must not be negative")
		return
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	budget := models.Budget{
		UserID:       user.ID,
		Category:     req.Category,
		ItemName:     req.ItemName,
		BudgetAmount: req.BudgetAmount,
		ActualAmount: req.ActualAmount,
		IsPaid:       req.IsPaid,
		Notes:        notes,
	}
	if err := h.DB.Create(&budget).Error; err != nil {
		util.Internal(c, "create budget", err)
		return
	}
	metrics.IncrementEntityWrite("budget", "create")

	c.JSON(http.StatusCreated, toBudgetResp(&budget))
}

// ---------- update ----------

// UpdateBudget merges the supplied fields over the stored row. Omitted
// fields keep their value; an explicit null clears notes.
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var req updateBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var budget models.Budget
	if err := h.DB.First(&budget, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Budget not found")
		} else {
			util.Internal(c, "load budget", err)
		}
		return
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			util.Error(c, http.StatusBadRequest, "Category and item name are required")
			return
		}
		budget.Category = category
	}
	if req.ItemName != nil {
		itemName := strings.TrimSpace(*req.ItemName)
		if itemName == "" {
			util.Error(c, http.StatusBadRequest, "Category and item name are required")
			return
		}
		budget.ItemName = itemName
	}
	if req.BudgetAmount != nil {
		if util.ValidateAmount(*req.BudgetAmount) != nil {
			util.Error(c, http.StatusBadRequest, "Amounts must not be negative")
			return
		}
		budget.BudgetAmount = *req.BudgetAmount
	}
	if req.ActualAmount != nil {
		if util.ValidateAmount(*req.ActualAmount) != nil {
			util.Error(c, http.StatusBadRequest, "Amounts must not be negative")
			return
		}
		budget.ActualAmount = *req.ActualAmount
	}
	if req.IsPaid != nil {
		budget.IsPaid = *req.IsPaid
	}
	if req.Notes.Set {
		if !req.Notes.Valid {
			budget.Notes = nil
		} else {
			notes := req.Notes.Value
			budget.Notes = &notes
		}
	}

	if err := h.DB.Save(&budget).Error; err != nil {
		util.Internal(c, "save budget", err)
		return
	}
	metrics.IncrementEntityWrite("budget", "update")

	c.JSON(http.StatusOK, toBudgetResp(&budget))
}

// ---------- delete ----------

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	res := h.DB.Delete(&models.Budget{}, id)
	if res.Error != nil {
		util.Internal(c, "delete budget", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Budget not found")
		return
	}
	metrics.IncrementEntityWrite("budget", "delete")

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}

// ---------- summary ----------

type categorySummary struct {
	Category string `json:"category"`
	Budget   int64  `json:"budget"`
	Actual   int64  `json:"actual"`
}

// GetSummary recomputes the dashboard totals over the full budget set on
// every call. Categories without rows never appear in byCategory.
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	var budgets []models.Budget
	if err := h.DB.Order("category ASC, id ASC").Find(&budgets).Error; err != nil {
		util.Internal(c, "load budgets", err)
		return
	}

	var totalBudget, totalActual int64
	byCategory := make([]categorySummary, 0)
	idx := make(map[string]int)

	for i := range budgets {
		b := &budgets[i]
		totalBudget += b.BudgetAmount
		totalActual += b.ActualAmount

		j, ok := idx[b.Category]
		if !ok {
			j = len(byCategory)
			idx[b.Category] = j
			byCategory = append(byCategory, categorySummary{Category: b.Category})
		}
		byCategory[j].Budget += b.BudgetAmount
		byCategory[j].Actual += b.ActualAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"totalBudget": totalBudget,
		"totalActual": totalActual,
		"byCategory":  byCategory,
	})
}
