package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0PeterAdel/Money-Management/internal/middleware"
	"github.com/0PeterAdel/Money-Management/internal/models"
)

type createGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func toGroupResponse(g *models.Group) gin.H {
	return gin.H{
		"id":          g.ID,
		"name":        g.Name,
		"description": g.Description,
		"member_ids":  g.MemberIDs,
		"created_at":  g.CreatedAt,
	}
}

// CreateGroup creates a group with the caller as first member.
func (h *Handler) CreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groups.Create(c.Request.Context(), req.Name, req.Description, middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupResponse(group))
}

// GetGroup returns one group with its members.
func (h *Handler) GetGroup(c *gin.Context) {
	group, err := h.groups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}

// ListGroups returns all groups.
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]gin.H, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	c.JSON(http.StatusOK, resp)
}

// AddMember adds a user to a group.
func (h *Handler) AddMember(c *gin.Context) {
	if err := h.groups.AddMember(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member added"})
}

// RemoveMember removes a user from a group; blocked while they have open
// debts or a nonzero wallet balance in the group.
func (h *Handler) RemoveMember(c *gin.Context) {
	if err := h.groups.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

// ListCategories returns all expense categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.groups.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, gin.H{"id": cat.ID, "name": cat.Name})
	}
	c.JSON(http.StatusOK, resp)
}
