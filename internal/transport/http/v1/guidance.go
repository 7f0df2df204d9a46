package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

// TravelGuidance answers a travel question.
// POST /api/travel-guidance/
//
// Remote failures are reported inside the 200 body, never as a status code.
func (h *Handler) TravelGuidance(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.GuidanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Detail: "invalid request body"})
	}

	if req.UserMessage == nil {
		return c.JSON(http.StatusUnprocessableEntity, domain.ValidationErrorResponse{
			Detail: []domain.FieldError{{
				Loc:  []string{"body", "user_message"},
				Msg:  "Field required",
				Type: "missing",
			}},
		})
	}

	if h.policy != nil {
		decision, err := h.policy.Evaluate(ctx, policy.Input{
			Messages:    req.Messages,
			MaxMessages: h.config.Policy.MaxMessages,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Detail: err.Error()})
		}
		if !decision.Allowed() {
			return c.JSON(http.StatusUnprocessableEntity, domain.ValidationErrorResponse{
				Detail: []domain.FieldError{{
					Loc:  []string{"body", "messages"},
					Msg:  decision.Reason,
					Type: "policy",
				}},
			})
		}
	}

	reply, transcript := h.service.GetGuidance(ctx, *req.UserMessage, req.Messages)

	return c.JSON(http.StatusOK, domain.GuidanceResponse{
		Response: reply,
		Messages: transcript,
	})
}
