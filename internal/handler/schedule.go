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

// ScheduleHandler serves the wedding checklist CRUD.
type ScheduleHandler struct {
	DB *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// ---------- request/response shapes ----------

type createScheduleReq struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Status   string `json:"status"`
	DueDate  string `json:"dueDate"`
	Notes    string `json:"notes"`
}

type updateScheduleReq struct {
	Title    *string               `json:"title"`
	Category *string               `json:"category"`
	Status   *string               `json:"status"`
	DueDate  util.Optional[string] `json:"dueDate"`
	Notes    util.Optional[string] `json:"notes"`
}

type scheduleResp struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	DueDate   *string   `json:"dueDate"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// toScheduleResp maps a stored row to the camelCase API shape.
func toScheduleResp(s *models.Schedule) scheduleResp {
	var dueDate *string
	if s.DueDate != nil {
		d := s.DueDate.Format("2006-01-02")
		dueDate = &d
	}
	return scheduleResp{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Category:  s.Category,
		Status:    s.Status,
		DueDate:   dueDate,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

// ---------- list ----------

// ListSchedules returns every schedule, due date ascending with missing due
// dates last, newest created first within the same date. Reads are not
// scoped to the requesting user: the deployment is a single household.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var schedules []models.Schedule
	if err := h.DB.
		Order("due_date IS NULL, due_date ASC, created_at DESC, id DESC").
		Find(&schedules).Error; err != nil {
		util.Internal(c, "list schedules", err)
		return
	}

	items := make([]scheduleResp, 0, len(schedules))
	for i := range schedules {
		items = append(items, toScheduleResp(&schedules[i]))
	}
	c.JSON(http.StatusOK, items)
}

// ---------- create ----------

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Title and category are required")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if req.Title == "" || req.Category == "" {
		util.Error(c, http.StatusBadRequest, "Title and category are required")
		return
	}
	if !util.OneOf(req.Category, models.ScheduleCategories) {
		util.Error(c, http.StatusBadRequest, "Invalid category")
		return
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}
	if !util.OneOf(status, models.ScheduleStatuses) {
		util.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		t, err := util.ParseDate(req.DueDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
			return
		}
		dueDate = &t
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	schedule := models.Schedule{
		UserID:   user.ID,
		Title:    req.Title,
		Category: req.Category,
		Status:   status,
		DueDate:  dueDate,
		Notes:    notes,
	}
	if err := h.DB.Create(&schedule).Error; err != nil {
		util.Internal(c, "create schedule", err)
		return
	}
	metrics.IncrementEntityWrite("schedule", "create")

	c.JSON(http.StatusCreated, toScheduleResp(&schedule))
}

// ---------- update ----------

// UpdateSchedule merges the supplied fields over the stored row. Omitted
// fields keep their value; an explicit null clears dueDate or notes.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var req updateScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var schedule models.Schedule
	if err := h.DB.First(&schedule, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Schedule not found")
		} else {
			util.Internal(c, "load schedule", err)
		}
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			util.Error(c, http.StatusBadRequest, "Title and category are required")
			return
		}
		schedule.Title = title
	}
	if req.Category != nil {
		if !util.OneOf(*req.Category, models.ScheduleCategories) {
			util.Error(c, http.StatusBadRequest, "Invalid category")
			return
		}
		schedule.Category = *req.Category
	}
	if req.Status != nil {
		if !util.OneOf(*req.Status, models.ScheduleStatuses) {
			util.Error(c, http.StatusBadRequest, "Invalid status")
			return
		}
		schedule.Status = *req.Status
	}
	if req.DueDate.Set {
		if !req.DueDate.Valid {
			schedule.DueDate = nil
		} else {
			t, err := util.ParseDate(req.DueDate.Value)
			if err != nil {
				util.Error(c, http.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
				return
			}
			schedule.DueDate = &t
		}
	}
	if req.Notes.Set {
		if !req.Notes.Valid {
			schedule.Notes = nil
		} else {
			notes := req.Notes.Value
			schedule.Notes = &notes
		}
	}

	if err := h.DB.Save(&schedule).Error; err != nil {
		util.Internal(c, "save schedule", err)
		return
	}
	metrics.IncrementEntityWrite("schedule", "update")

	c.JSON(http.StatusOK, toScheduleResp(&schedule))
}

// ---------- delete ----------

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	res := h.DB.Delete(&models.Schedule{}, id)
	if res.Error != nil {
		util.Internal(c, "delete schedule", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Schedule not found")
		return
	}
	metrics.IncrementEntityWrite("schedule", "delete")

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}
