package admin

import (
	"strconv"
	"strings"

	"github.com/nextcart/nextcart/internal/http/response"
	"github.com/nextcart/nextcart/internal/models"
	"github.com/nextcart/nextcart/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminUserView 管理端用户视图（不含密码哈希）
type AdminUserView struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	IsAdmin     bool   `json:"is_admin"`
	Status      string `json:"status"`
	City        string `json:"city"`
	Country     string `json:"country"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func adminUserView(user *models.User) AdminUserView {
	view := AdminUserView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		IsAdmin:   user.IsAdmin,
		Status:    user.Status,
		City:      user.City,
		Country:   user.Country,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if user.LastLoginAt != nil {
		view.LastLoginAt = user.LastLoginAt.Format("2006-01-02 15:04:05")
	}
	return view
}

// AdminListUsers 管理端用户列表
func (h *Handler) AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	}

	users, total, err := h.AuthService.ListUsers(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "list users failed", err)
		return
	}

	views := make([]AdminUserView, 0, len(users))
	for i := range users {
		views = append(views, adminUserView(&users[i]))
	}
	response.SuccessWithPage(c, views, response.NewPagination(filter.Page, filter.PageSize, total))
}

// AdminGetUser 管理端用户详情
func (h *Handler) AdminGetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUserByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "get user failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	response.Success(c, adminUserView(user))
}

// AdminCountUsers 管理端用户总数
func (h *Handler) AdminCountUsers(c *gin.Context) {
	count, err := h.AuthService.CountUsers()
	if err != nil {
		respondError(c, response.CodeInternal, "count users failed", err)
		return
	}
	response.Success(c, gin.H{"user_count": count})
}
