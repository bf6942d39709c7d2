package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memberhub/member-console/internal/api/metrics"
	"github.com/memberhub/member-console/internal/core/domain"
	"github.com/memberhub/member-console/internal/core/ports"
)

// MemberHandler handles HTTP requests for member operations. All mutations
// are keyed by the server-assigned member id, never by email.
type MemberHandler struct {
	service ports.MemberService
}

func NewMemberHandler(service ports.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// Create handles POST /api/members — open registration.
//
// @Summary      Register a new member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      createMemberRequest  true  "Member details"
// @Success      201   {object}  memberResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/members [post]
func (h *MemberHandler) Create(c echo.Context) error {
	var req createMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := h.service.Register(c.Request().Context(), ports.CreateMemberInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	metrics.MembersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMemberResponse(member))
}

// List handles GET /api/members — admin listing.
//
// @Summary      List all members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   memberResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMemberListResponse(members))
}

// Get handles GET /api/members/:id — admin or self.
//
// @Summary      Get a member by id
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Member id"
// @Success      200  {object}  memberResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/members/{id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := requireAdminOrSelf(c, id); err != nil {
		return err
	}

	member, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMemberResponse(member))
}

// Update handles PATCH /api/members/:id — partial update, admin or self.
//
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Member id"
// @Param        body  body      updateMemberRequest  true  "Fields to update"
// @Success      200   {object}  memberResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/members/{id} [patch]
func (h *MemberHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if err := requireAdminOrSelf(c, id); err != nil {
		return err
	}

	var req updateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req))
	if err != nil {
		metrics.MemberMutationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	metrics.MemberMutationsTotal.WithLabelValues("update", "ok").Inc()
	return c.JSON(http.StatusOK, toMemberResponse(member))
}

// Delete handles DELETE /api/members/:id — admin or self.
//
// @Summary      Delete a member
// @Tags         members
// @Security     BearerAuth
// @Param        id  path  string  true  "Member id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/members/{id} [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := requireAdminOrSelf(c, id); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		metrics.MemberMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.MemberMutationsTotal.WithLabelValues("delete", "ok").Inc()
	return c.NoContent(http.StatusNoContent)
}

// SetRoles handles PUT /api/members/:id/roles — admin only. The body is a
// bare JSON array of role labels, ordered, uppercase (e.g. ["ADMIN"]).
//
// @Summary      Replace a member's roles
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string    true  "Member id"
// @Param        body  body      []string  true  "Ordered role labels"
// @Success      200   {object}  memberResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/members/{id}/roles [put]
func (h *MemberHandler) SetRoles(c echo.Context) error {
	id := c.Param("id")

	var roles []string
	if err := c.Bind(&roles); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(roles) == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, domain.ErrInvalidRole.Error())
	}

	member, err := h.service.SetRoles(c.Request().Context(), id, roles)
	if err != nil {
		metrics.MemberMutationsTotal.WithLabelValues("set_roles", "error").Inc()
		return err
	}

	metrics.MemberMutationsTotal.WithLabelValues("set_roles", "ok").Inc()
	return c.JSON(http.StatusOK, toMemberResponse(member))
}
