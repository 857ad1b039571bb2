package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/court-sense/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it. An empty body is accepted
// when allowEmpty is set.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if !allowEmpty {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return h.validateRequest(ctx, dst)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

type createGameRequest struct {
	TeamName string `json:"team_name" validate:"omitempty,max=100"`
}

type gameSetupRequest struct {
	TeamName       string  `json:"team_name" validate:"required,max=100"`
	OpponentName   string  `json:"opponent_name" validate:"omitempty,max=100"`
	Date           *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CurrentQuarter *int    `json:"current_quarter" validate:"omitempty,min=0"`
	YourTeamScore  *int    `json:"your_team_score" validate:"omitempty,min=0"`
	OpponentScore  *int    `json:"opponent_score" validate:"omitempty,min=0"`
}

type addPlayerRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Number *int   `json:"number" validate:"omitempty,min=0,max=99"`
}

type updatePlayerRequest struct {
	Number *int `json:"number" validate:"required,min=0,max=99"`
}

type adjustClockRequest struct {
	DeltaSeconds int `json:"delta_seconds"`
}

type selectPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"omitempty,max=64"`
}

type selectShotTypeRequest struct {
	ShotType int `json:"shot_type" validate:"oneof=2 3"`
}

type selectResultRequest struct {
	Result string `json:"result" validate:"required,oneof=score miss foul"`
}

type selectReboundRequest struct {
	Offensive *bool `json:"offensive" validate:"required"`
}

type markFreeThrowRequest struct {
	Mark string `json:"mark" validate:"required,oneof=made missed not_taken"`
}
