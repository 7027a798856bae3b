package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/model"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
	"github.com/iliyamo/driving-licence-admin/internal/utils"
)

// SessionHandler exposes session storage endpoints.  Sessions are
// written by the frontend after the identity-provider exchange; the
// subject comes from the verified bearer token, not the body.
type SessionHandler struct {
	Sessions *repository.SessionRepo
}

func NewSessionHandler(sessions *repository.SessionRepo) *SessionHandler {
	if sessions == nil {
		panic("nil repository passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions}
}

type sessionReq struct {
	SessionID   string  `json:"session_id"`
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	Scope       *string `json:"scope"`
	ExpiresIn   int     `json:"expires_in"`
}

// Upsert handles POST /session.  A missing session_id gets a fresh
// random one; the caller receives it in the response.
func (h *SessionHandler) Upsert(c echo.Context) error {
	sub, _ := c.Get("sub").(string)
	if sub == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no authenticated subject"})
	}

	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SessionID == "" {
		id, err := utils.NewSessionID()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate session id failed"})
		}
		req.SessionID = id
	}

	saved, err := h.Sessions.Upsert(c.Request().Context(), &model.UserSession{
		SessionID:   req.SessionID,
		Sub:         sub,
		AccessToken: req.AccessToken,
		TokenType:   req.TokenType,
		Scope:       req.Scope,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// Cleanup handles POST /session/cleanup: an on-demand reclaim of
// expired sessions, returning the removed identifiers.  The same
// reclaim runs hourly in the background.
func (h *SessionHandler) Cleanup(c echo.Context) error {
	ids, err := h.Sessions.Cleanup(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": ids, "count": len(ids)})
}
