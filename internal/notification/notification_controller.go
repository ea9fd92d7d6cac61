package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunislock/tunislock-api/internal/common"
	"github.com/tunislock/tunislock-api/pkg/utils"
	"gorm.io/gorm"
)

// NotificationController serves the caller's stored notifications.
type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// @Summary      List my notifications
// @Tags         Notifications
// @Produce      json
// @Param        unread query bool false "Only unread notifications"
// @Success      200 {object} utils.PaginatedResponse
// @Router       /notifications [get]
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := nc.db.Model(&Notification{}).Where("user_id = ?", userID)
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	var notifications []Notification
	offset := (page - 1) * pageSize
	if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&notifications).Error; err != nil {
		utils.InternalErrorJSON(c, err)
		return
	}

	utils.PaginatedJSON(c, notifications, page, pageSize, total)
}

// @Summary      Mark a notification as read
// @Tags         Notifications
// @Produce      json
// @Param        id path int true "Notification ID"
// @Success      200 {object} utils.SuccessResponse
// @Router       /notifications/{id}/read [post]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		utils.UnauthorizedJSON(c)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestJSON(c, "Invalid notification ID")
		return
	}

	var n Notification
	if err := nc.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundJSON(c, "Notification")
			return
		}
		utils.InternalErrorJSON(c, err)
		return
	}

	if !n.Read {
		n.Read = true
		if err := nc.db.Save(&n).Error; err != nil {
			utils.InternalErrorJSON(c, err)
			return
		}
	}

	utils.SuccessJSON(c, http.StatusOK, "Notification marked as read", n)
}
