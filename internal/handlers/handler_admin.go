package handlers

import (
	"net/http"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves the cross-tenant administration routes.
type adminHandler struct {
	userService      portssvc.UserSvcFacade
	planService      portssvc.PlanSvcFacade
	dashboardService portssvc.DashboardSvcFacade
}

func newAdminHandler(us portssvc.UserSvcFacade, ps portssvc.PlanSvcFacade, ds portssvc.DashboardSvcFacade) *adminHandler {
	return &adminHandler{userService: us, planService: ps, dashboardService: ds}
}

// registerAdminRoutes registers the /admin group, restricted to the ADMIN role.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services.User, services.Plan, services.Dashboard)

	admin := rg.Group("/admin", middleware.RequireRole(string(domain.RoleAdmin)))
	{
		admin.GET("/stats", h.stats)

		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.PUT("/users/:id", h.updateUser)
		admin.PATCH("/users/:id/toggle-status", h.toggleUserStatus)
		admin.DELETE("/users/:id", h.deleteUser)

		admin.GET("/plans", h.listPlans)
		admin.POST("/plans", h.createPlan)
		admin.DELETE("/plans/:id", h.deletePlan)
	}
}

// stats godoc
// @Summary Platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *adminHandler) stats(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminStatsResponse(stats))
}

// listUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// createUser godoc
// @Summary Create a user
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *adminHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req, "CreateUser") {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// updateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [put]
func (h *adminHandler) updateUser(c *gin.Context) {
	requester, ok := tenantID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req, "UpdateUser") {
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), req, requester)
	if err != nil {
		respondWithError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// toggleUserStatus godoc
// @Summary Activate or deactivate a user
// @Description An admin cannot deactivate their own account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/toggle-status [patch]
func (h *adminHandler) toggleUserStatus(c *gin.Context) {
	requester, ok := tenantID(c)
	if !ok {
		return
	}
	user, err := h.userService.ToggleUserStatus(c.Request.Context(), c.Param("id"), requester)
	if err != nil {
		respondWithError(c, err, "Failed to change user status")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes the account and all of its data. An admin cannot delete their own account.
// @Tags admin
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	requester, ok := tenantID(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"), requester); err != nil {
		respondWithError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPlans godoc
// @Summary List plans
// @Tags admin
// @Produce json
// @Success 200 {array} dto.PlanResponse
// @Security BearerAuth
// @Router /admin/plans [get]
func (h *adminHandler) listPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanResponses(plans))
}

// createPlan godoc
// @Summary Create a plan
// @Tags admin
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Plan details"
// @Success 201 {object} dto.PlanResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/plans [post]
func (h *adminHandler) createPlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !bindJSON(c, &req, "CreatePlan") {
		return
	}
	plan, err := h.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// deletePlan godoc
// @Summary Delete a plan
// @Description Users on the plan keep their accounts without a plan
// @Tags admin
// @Param id path string true "Plan ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/plans/{id} [delete]
func (h *adminHandler) deletePlan(c *gin.Context) {
	if err := h.planService.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}
