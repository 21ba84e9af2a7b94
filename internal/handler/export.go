package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/marco0212/wedding-tracker/internal/models"
	"github.com/marco0212/wedding-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads the budget ledger as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Category", "Item", "Budget", "Actual", "Paid", "Notes", "Created"}

func (h *ExportHandler) loadBudgets() ([]models.Budget, error) {
	var budgets []models.Budget
	err := h.DB.Order("category ASC, created_at DESC, id DESC").Find(&budgets).Error
	return budgets, err
}

func exportRow(b *models.Budget) []string {
	paid := "no"
	if b.IsPaid {
		paid = "yes"
	}
	notes := ""
	if b.Notes != nil {
		notes = *b.Notes
	}
	return []string{
		b.Category,
		b.ItemName,
		strconv.FormatInt(b.BudgetAmount, 10),
		strconv.FormatInt(b.ActualAmount, 10),
		paid,
		notes,
		b.CreatedAt.Format("2006-01-02"),
	}
}

// ExportCSV streams the ledger as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	budgets, err := h.loadBudgets()
	if err != nil {
		util.Internal(c, "load budgets", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budgets_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range budgets {
		writer.Write(exportRow(&budgets[i]))
	}
}

// ExportXLSX streams the ledger as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	budgets, err := h.loadBudgets()
	if err != nil {
		util.Internal(c, "load budgets", err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Budgets"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Internal(c, "create sheet", err)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range budgets {
		b := &budgets[idx]
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.ItemName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.BudgetAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.ActualAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.IsPaid)
		if b.Notes != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), *b.Notes)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.CreatedAt.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "B", 18)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"budgets_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Internal(c, "write xlsx", err)
	}
}
