package handlers

import (
	"medlink/services/auth"
	"medlink/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Revoker auth.TokenRevoker
}

// Logout revokes the presented token. Without a revocation store the client
// simply drops the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Revoker != nil {
		if err := auth.Logout(c.Request.Context(), h.Revoker, c.GetString(utils.CtxToken)); err != nil {
			utils.RespondError(c, err)
			return
		}
	}
	ok(c, gin.H{"message": "Logged out"})
}
