package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gemledger-lab/gemledger/pkg/domain/interfaces"
	"github.com/gemledger-lab/gemledger/pkg/domain/model"
	"github.com/gemledger-lab/gemledger/pkg/domain/types"
	"github.com/gemledger-lab/gemledger/pkg/executor"
	"github.com/gemledger-lab/gemledger/pkg/utils/logging"
)

// ActionUseCase drives the confirmation lifecycle of AI-proposed actions:
// awaiting_confirmation → executing → completed | failed.
type ActionUseCase struct {
	repo     interfaces.Repository
	registry *executor.Registry
}

func NewActionUseCase(repo interfaces.Repository, registry *executor.Registry) *ActionUseCase {
	return &ActionUseCase{
		repo:     repo,
		registry: registry,
	}
}

func (uc *ActionUseCase) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	return uc.repo.Action().Get(ctx, userID, id)
}

func (uc *ActionUseCase) List(ctx context.Context, userID string) ([]*model.Action, error) {
	return uc.repo.Action().List(ctx, userID)
}

// Execute runs a confirmed action. The transition into executing is a
// compare-and-swap, so when two confirmations race exactly one proceeds;
// the loser gets ErrInvalidState with the row untouched. Every path out of
// executing finalizes the action exactly once, so a failing executor or an
// unknown action type can never leave it stuck.
func (uc *ActionUseCase) Execute(ctx context.Context, userID, actionID string) (*model.ActionResult, error) {
	logger := logging.From(ctx)

	action, err := uc.repo.Action().Transition(ctx, userID, actionID,
		types.ActionStatusAwaitingConfirmation, types.ActionStatusExecuting)
	if err != nil {
		return nil, err
	}

	result, execErr := uc.registry.Dispatch(ctx, action.ActionType, action.ExtractedData, userID, actionID)
	if execErr != nil {
		logger.Error("action execution failed",
			"action_id", actionID,
			"action_type", action.ActionType,
			"error", execErr.Error())

		if _, finErr := uc.repo.Action().Finalize(ctx, userID, actionID,
			types.ActionStatusFailed, "", execErr.Error()); finErr != nil {
			logger.Error("failed to finalize failed action", "action_id", actionID, "error", finErr.Error())
		}
		if errors.Is(execErr, types.ErrUnknownActionType) {
			return nil, execErr
		}
		return &model.ActionResult{
			Success: false,
			Message: "Action execution failed",
		}, nil
	}

	if _, err := uc.repo.Action().Finalize(ctx, userID, actionID,
		types.ActionStatusCompleted, result.EntityID, ""); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize completed action",
			goerr.V("action_id", actionID))
	}

	logger.Info("action executed",
		"action_id", actionID,
		"action_type", action.ActionType,
		"entity_id", result.EntityID)

	return result, nil
}
