package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shiomura/team-task-api/internal/dto"
	apierrors "github.com/shiomura/team-task-api/internal/errors"
	"github.com/shiomura/team-task-api/internal/middleware"
	"github.com/shiomura/team-task-api/internal/models"
	"github.com/shiomura/team-task-api/internal/services"
	"github.com/shiomura/team-task-api/internal/utils"
)

// UserHandler exposes the super-admin user administration routes.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns all users, optionally filtered by status or role
func (h *UserHandler) ListUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListUsersInput{
		ActorID:  userID,
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.UserStatus(statusStr)
		input.Status = &status
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.Role(roleStr)
		input.Role = &role
	}

	users, total, err := h.userService.ListUsers(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// ListPendingUsers returns users awaiting approval
func (h *UserHandler) ListPendingUsers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.ListPendingUsers(userID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, params.Page, params.Limit, total))
}

// ApproveUser approves a pending registration into a role
func (h *UserHandler) ApproveUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	type ApproveUserRequest struct {
		Role         models.Role `json:"role" binding:"required"`
		SupervisorID *uint64     `json:"supervisor_id"`
		ManagerID    *uint64     `json:"manager_id"`
	}

	var req ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.ApproveUser(services.ApproveUserInput{
		ActorID:      userID,
		TargetID:     targetID,
		Role:         req.Role,
		SupervisorID: req.SupervisorID,
		ManagerID:    req.ManagerID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// RejectUser rejects and deletes a pending registration
func (h *UserHandler) RejectUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	type RejectUserRequest struct {
		Reason string `json:"reason"`
	}

	var req RejectUserRequest
	// Body is optional; rejection works without a reason.
	_ = c.ShouldBindJSON(&req)

	if err := h.userService.RejectUser(userID, targetID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration rejected",
	})
}

// ChangeUserRole changes a user's role
func (h *UserHandler) ChangeUserRole(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	type ChangeRoleRequest struct {
		Role models.Role `json:"role" binding:"required"`
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	user, err := h.userService.ChangeUserRole(userID, targetID, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser permanently deletes a user account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	targetID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func parseUserID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}
