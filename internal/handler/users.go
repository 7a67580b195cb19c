package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers returns all registered users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]gin.H, 0, len(users))
	for _, u := range users {
		resp = append(resp, gin.H{"id": u.ID, "name": u.Name})
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser removes a user; blocked while they have open debts, balances,
// or unresolved actions.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
