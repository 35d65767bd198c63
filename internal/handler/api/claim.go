package api

import (
	"errors"
	"net/http"

	"claimflow/internal/domain/claim"
	reqdto "claimflow/internal/handler/dto/request"
	resdto "claimflow/internal/handler/dto/response"
	"claimflow/internal/handler/httperr"
	"claimflow/internal/handler/middleware"
	"claimflow/internal/infra"
	"claimflow/internal/pkg/errs"
	"claimflow/internal/usecase/commands"
	"claimflow/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClaimHandler struct {
	claimCommands commands.ClaimCommands
	claimQueries  queries.ClaimQueries
}

func NewClaimHandler(claimCommands commands.ClaimCommands, claimQueries queries.ClaimQueries) *ClaimHandler {
	return &ClaimHandler{
		claimCommands: claimCommands,
		claimQueries:  claimQueries,
	}
}

// @Summary Create claim
// @Description Reserve a resource, optionally scoped to a timeslot
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateClaimRequest true "Claim request"
// @Success 201 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing authenticated user"), "Internal server error", nil)
		return
	}

	var req reqdto.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.claimCommands.Create(c.Request.Context(), commands.CreateClaimCommand{
		ResourceID: req.ResourceID,
		TimeslotID: req.TimeslotID,
	}, actorID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromClaimView(view))
}

// @Summary Update claim status
// @Description Transition a claim through its approval/fulfillment workflow
// @Tags claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param request body reqdto.UpdateClaimRequest true "Target status"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /claims/{id} [patch]
func (h *ClaimHandler) Update(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing authenticated user"), "Internal server error", nil)
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid claim ID format", nil)
		return
	}

	var req reqdto.UpdateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.claimCommands.Transition(c.Request.Context(), claimID, claim.Status(req.Status), actorID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimView(view))
}

// @Summary Delete claim
// @Description Withdraw a claim before fulfillment begins
// @Tags claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /claims/{id} [delete]
func (h *ClaimHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("missing authenticated user"), "Internal server error", nil)
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid claim ID format", nil)
		return
	}

	if err := h.claimCommands.Delete(c.Request.Context(), claimID, actorID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get claim
// @Description Get claim by ID (public read)
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /claims/{id} [get]
func (h *ClaimHandler) Get(c *gin.Context) {
	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid claim ID format", nil)
		return
	}

	view, err := h.claimQueries.GetByID(c.Request.Context(), claimID)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimView(view))
}

// @Summary List claims
// @Description List claims filtered by claimant, resource, timeslot or resource owner (public read)
// @Tags claims
// @Produce json
// @Param claimantId query string false "Claimant ID"
// @Param resourceId query string false "Resource ID"
// @Param timeslotId query string false "Timeslot ID"
// @Param resourceOwnerId query string false "Resource owner ID"
// @Success 200 {array} resdto.ClaimResponse
// @Failure 400 {object} httperr.Response
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	var query reqdto.ListClaimsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	views, err := h.claimQueries.List(c.Request.Context(), queries.ClaimFilter{
		ClaimantID:      query.ClaimantID,
		ResourceID:      query.ResourceID,
		TimeslotID:      query.TimeslotID,
		ResourceOwnerID: query.ResourceOwnerID,
		Limit:           query.Limit,
		Offset:          query.Offset,
	})
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromClaimViews(views))
}

// @Summary Timeslot availability
// @Description Remaining capacity for a timeslot (public read)
// @Tags timeslots
// @Produce json
// @Param id path string true "Timeslot ID"
// @Success 200 {object} resdto.TimeslotAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /timeslots/{id}/availability [get]
func (h *ClaimHandler) Availability(c *gin.Context) {
	timeslotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid timeslot ID format", nil)
		return
	}

	view, err := h.claimQueries.TimeslotAvailability(c.Request.Context(), timeslotID)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// Sentinels may arrive marked onto an underlying cause, so matching
// goes through errs.Is rather than the standard library.
func (h *ClaimHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errs.Is(err, commands.ErrTimeslotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Timeslot not found", nil)
	case errs.Is(err, commands.ErrClaimNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Claim not found", nil)
	case errs.Is(err, commands.ErrNotAuthorized):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not authorized for this claim operation", nil)
	case errs.Is(err, commands.ErrClaimConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Claim conflicts with an existing claim or exhausted capacity", nil)
	case errs.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Illegal status transition", nil)
	case errs.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Claim validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *ClaimHandler) writeQueryError(c *gin.Context, err error) {
	if infra.IsKind(err, infra.KindNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
