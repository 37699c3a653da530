package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/application/port"
	"pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/validation"
)

// PantryWriteResult is the stored pantry plus any hours entries the evaluator could not understand.
// Warnings never block a save; staff see them and fix the text when they want to.
type PantryWriteResult struct {
	Pantry   domain.Pantry         `json:"pantry"`
	Warnings []hours.ScheduleIssue `json:"warnings,omitempty"`
}

// ManagePantryUseCase creates and edits pantry listings on behalf of staff.
type ManagePantryUseCase struct {
	Pantries port.PantryRepository
	Clock    port.Clock
	NewID    func() uuid.UUID
}

func NewManagePantryUseCase(pantries port.PantryRepository, clock port.Clock) *ManagePantryUseCase {
	return &ManagePantryUseCase{Pantries: pantries, Clock: clock, NewID: uuid.New}
}

func (uc *ManagePantryUseCase) Create(ctx context.Context, actor domain.Actor, cmd domain.CreatePantryCommand) (*PantryWriteResult, error) {
	if err := validation.Struct(cmd, domain.ErrInvalidPantry); err != nil {
		return nil, err
	}
	pantry := cmd.NewPantry(uc.NewID(), uc.Clock().UTC())
	if !actor.Admin {
		pantry.ManagerID = actor.UserID
	}
	if err := uc.Pantries.Create(ctx, pantry); err != nil {
		return nil, fmt.Errorf("create pantry: %w", err)
	}
	result := &PantryWriteResult{Pantry: pantry, Warnings: hours.ParseSchedule(pantry.Hours).Issues()}
	slog.Info("pantry created",
		slog.String("pantryId", pantry.ID.String()),
		slog.String("userId", actor.UserID),
		slog.Int("hoursWarnings", len(result.Warnings)),
	)
	return result, nil
}

func (uc *ManagePantryUseCase) Update(ctx context.Context, actor domain.Actor, pantryID string, cmd domain.UpdatePantryCommand) (*PantryWriteResult, error) {
	id, err := domain.ParseID(pantryID, domain.ErrPantryNotFound)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(cmd, domain.ErrInvalidPantry); err != nil {
		return nil, err
	}
	pantry, err := uc.Pantries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*pantry) {
		return nil, domain.ErrNotPantryManager
	}
	if !actor.Admin {
		// only admins reassign pantries
		cmd.ManagerID = nil
	}
	cmd.Apply(pantry)
	if err := uc.Pantries.Update(ctx, *pantry); err != nil {
		return nil, fmt.Errorf("update pantry: %w", err)
	}
	result := &PantryWriteResult{Pantry: *pantry, Warnings: hours.ParseSchedule(pantry.Hours).Issues()}
	slog.Info("pantry updated",
		slog.String("pantryId", pantry.ID.String()),
		slog.String("userId", actor.UserID),
		slog.Int("hoursWarnings", len(result.Warnings)),
	)
	return result, nil
}
