package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divy97/rajawadu/internal/app/service/guestuser"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/pkg/response"
)

type createOrGetGuestRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type guestSessionResponse struct {
	GuestUserID  string `json:"guest_user_id"`
	SessionToken string `json:"session_token"`
}

// @Summary      Create or get guest user
// @Description  Returns the guest identity for an email, creating it on first checkout, plus a signed session token.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body handlers.createOrGetGuestRequest true "Guest identity request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/users/guest [post]
func ApiCreateOrGetGuest(svc *guestuser.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrGetGuestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !payu.ValidEmail(req.Email) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "valid email is required"))
			return
		}

		guest, err := svc.CreateOrGet(c.Request.Context(), payu.SanitizeInput(req.Email), payu.SanitizeInput(req.Name), payu.DigitsOnly(req.Phone))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		token, err := svc.MintSessionToken(guest.ID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.OKT(guestSessionResponse{GuestUserID: guest.ID, SessionToken: token}))
	}
}

func RegisterUserRoutes(r gin.IRouter, svc *guestuser.Service) {
	r.POST("/users/guest", ApiCreateOrGetGuest(svc))
}
