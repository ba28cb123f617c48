package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"sportify/internal/delivery/http/helpers"
	"sportify/internal/domain"
)

// LoginRequest is the request body for POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if strings.TrimSpace(l.Username) == "" || l.Password == "" {
		return []string{"username and password required"}
	}
	return nil
}

// LoginSuccessResponse is the success response envelope for POST /api/admin/login (200).
type LoginSuccessResponse struct {
	Data  *domain.LoginResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// CreateAdminRequest is the request body for POST /api/admin/create.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // optional: "admin" or "super_admin" (defaults to "admin")
}

// ChangePasswordRequest is the request body for PUT /api/admin/change-password.
// AdminID is set by super admins resetting another admin's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	AdminID         string `json:"admin_id"`
}

// Validate implements Validator.
func (c ChangePasswordRequest) Validate() []string {
	if c.NewPassword == "" {
		return []string{"new password required"}
	}
	return nil
}

// AdminSuccessResponse is the success response envelope for a single admin.
type AdminSuccessResponse struct {
	Data  *domain.Admin     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAdminsSuccessResponse is the success response envelope for GET /api/admin/list (200).
type ListAdminsSuccessResponse struct {
	Data  []*domain.Admin   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AdminController struct {
	Logger       *slog.Logger
	AuthService  domain.AuthService
	AdminService domain.AdminService
}

func NewAdminController(logger *slog.Logger, auth domain.AuthService, admins domain.AdminService) *AdminController {
	return &AdminController{
		Logger:       logger,
		AuthService:  auth,
		AdminService: admins,
	}
}

// Login godoc
// @Summary Admin login
// @Description Exchanges username and password for a bearer token. Rate limited per client address.
// @Tags admin
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Me godoc
// @Summary Current admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AdminSuccessResponse "data contains the admin"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/me [get]
func (c *AdminController) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	admin, err := c.AdminService.Me(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, admin)
}

// ListAdmins godoc
// @Summary List admins
// @Description Super admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAdminsSuccessResponse "data contains the admins"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/list [get]
func (c *AdminController) ListAdmins(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	admins, err := c.AdminService.ListAdmins(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, admins)
}

// CreateAdmin godoc
// @Summary Create an admin
// @Description Super admin only. Username and email must be unused.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param admin body CreateAdminRequest true "Admin data"
// @Success 201 {object} controllers.AdminSuccessResponse "data contains the created admin"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/create [post]
func (c *AdminController) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req CreateAdminRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	admin, err := c.AdminService.CreateAdmin(r.Context(), actor, domain.NewAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     strings.TrimSpace(strings.ToLower(req.Role)),
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, admin)
}

// ChangePassword godoc
// @Summary Change a password
// @Description Admins change their own password with the current one. Super admins may set admin_id to reset another admin's password.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} controllers.MessageSuccessResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (wrong current password)"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/change-password [put]
func (c *AdminController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.AdminService.ChangePassword(r.Context(), actor, domain.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		TargetAdminID:   strings.TrimSpace(req.AdminID),
	})
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
}

// DeleteAdmin godoc
// @Summary Delete an admin
// @Description Super admin only. Admins cannot delete their own account. Events they created are kept.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse "data contains a confirmation message"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/{id} [delete]
func (c *AdminController) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}
	if err := c.AdminService.DeleteAdmin(r.Context(), actor, id); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Admin deleted successfully"})
}
