package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/marco0212/wedding-tracker/internal/middleware"
	"github.com/marco0212/wedding-tracker/internal/models"
	"github.com/marco0212/wedding-tracker/internal/util"
	"github.com/marco0212/wedding-tracker/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and the current-user lookup.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 7 * 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

// ---------- request/response shapes ----------

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResp struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	WeddingDate *string   `json:"weddingDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResp(u *models.User) userResp {
	var weddingDate *string
	if u.WeddingDate != nil {
		s := u.WeddingDate.Format("2006-01-02")
		weddingDate = &s
	}
	return userResp{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		WeddingDate: weddingDate,
		CreatedAt:   u.CreatedAt,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ---------- register ----------

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email, password, and name are required")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" || req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Email, password, and name are required")
		return
	}
	if !emailRe.MatchString(req.Email) {
		util.Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}

	// case-insensitive uniqueness: check LOWER(email)
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", req.Email).
		Count(&count).Error; err != nil {
		util.Internal(c, "check email", err)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Internal(c, "hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Internal(c, "create user", err)
		return
	}
	metrics.IncrementEntityWrite("user", "register")

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Internal(c, "generate token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserResp(&user),
	})
}

// ---------- login ----------

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	if err := h.DB.Where("LOWER(email) = LOWER(?)", req.Email).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// unknown email and wrong password are indistinguishable
			util.Error(c, http.StatusBadRequest, "Invalid credentials")
		} else {
			util.Internal(c, "load user", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Internal(c, "generate token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResp(&user),
	})
}

// ---------- current user ----------

// GetMe returns the authenticated user (requires AuthMiddleware).
func GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, toUserResp(user))
}
