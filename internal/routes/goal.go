package routes

import (
	"net/http"
	"strings"

	"github.com/Toston-App/lake-sub000/internal/contracts"
	"github.com/Toston-App/lake-sub000/internal/domain/goal"
	"github.com/Toston-App/lake-sub000/internal/pkg/query"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateGoal(c *gin.Context) {
	var body contracts.GoalCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &goal.CreateGoalRequest{
		UserId: userID,
		Name:   body.Name,
		Target: money(body.Target),
	}
	if req.Deadline, err = parseDatePtr("deadline", body.Deadline); err != nil {
		h.respondError(c, err)
		return
	}

	g, err := h.GoalService.CreateGoal(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.GoalResponse{
		Message: "Meta criada com sucesso",
		Goal:    g,
	})
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	var body contracts.GoalUpdateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &goal.UpdateGoalRequest{
		Id:     goalID,
		UserId: userID,
		Name:   body.Name,
		Target: moneyPtr(body.Target),
	}
	if body.Deadline != nil && *body.Deadline == "" {
		req.ClearDeadline = true
	} else if req.Deadline, err = parseDatePtr("deadline", body.Deadline); err != nil {
		h.respondError(c, err)
		return
	}

	g, err := h.GoalService.UpdateGoal(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalResponse{
		Message: "Meta atualizada com sucesso",
		Goal:    g,
	})
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.GoalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Meta removida com sucesso"})
}

func (h *Handler) GetGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	g, err := h.GoalService.GetGoalByID(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalResponse{Goal: g})
}

func (h *Handler) GetGoalProgress(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := h.parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	progress, err := h.GoalService.GetGoalProgress(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalProgressResponse{Progress: progress})
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &goal.GoalFilters{}
	if raw := c.Query("status"); raw != "" && !strings.EqualFold(raw, "ALL") {
		status := goal.GoalStatus(strings.ToUpper(raw))
		filters.Status = &status
	}

	goals, err := h.GoalService.ListGoals(c.Request.Context(), userID, filters, query.ParsePageFromGin(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}
