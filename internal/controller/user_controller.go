package controller

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/service"
	"quiz_sphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users   *service.UserService
	Storage *service.StorageService
}

func NewUserController(users *service.UserService, storage *service.StorageService) *UserController {
	return &UserController{Users: users, Storage: storage}
}

// @Summary Update the current user's name and email
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.UpdateProfileRequest true "profile"
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.Users.UpdateProfile(user.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, updated)
}

// @Summary Upload an avatar image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "avatar image"
// @Success 200 {object} util.Response
// @Router /api/user/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported image type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%s%s", model.GenerateUUID(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		contentType = util.MimeImage + strings.TrimPrefix(ext, ".")
	}

	url, err := c.Storage.Provider.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.Users.SetAvatar(user.UserID, url); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}

// @Summary Delete the current user's account
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/user/profile [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Users.Delete(user.UserID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, "Account has been deleted successfully")
}

// @Summary Top users by total points
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of rows, default 10"
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	users, err := c.Users.Leaderboard(limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	rows := make([]gin.H, 0, len(users))
	for _, u := range users {
		rows = append(rows, gin.H{
			"name":        u.Name,
			"avatar":      u.Avatar,
			"totalPoints": u.TotalPoints,
		})
	}
	util.Success(ctx, rows)
}
