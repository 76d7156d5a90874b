package handlers

import (
	"net/http"

	"rps_arena/internal/domain"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

type playerRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (h *Handler) CreatePlayer(c *gin.Context) {
	var req playerRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.Players.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err, "failed to create player")
		return
	}
	h.Audit.LogPlayer(c.Request.Context(), p.ID, domain.AuditActionPlayerCreated, c.ClientIP(), map[string]any{"name": p.Name})
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPlayers(c *gin.Context) {
	players, err := h.Players.List(c.Request.Context(), queryLimit(c, defaultListLimit))
	if err != nil {
		writeError(c, err, "failed to list players")
		return
	}
	c.JSON(http.StatusOK, players)
}

func (h *Handler) GetPlayer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.Players.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get player")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RenamePlayer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req playerRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.Players.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, err, "failed to rename player")
		return
	}
	h.Audit.LogPlayer(c.Request.Context(), p.ID, domain.AuditActionPlayerRenamed, c.ClientIP(), map[string]any{"name": p.Name})
	c.JSON(http.StatusOK, p)
}
