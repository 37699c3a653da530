package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"pantryHub/internal/modules/donors/application/port"
	"pantryHub/internal/modules/donors/domain"
	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/shared/validation"
)

// ListDonorsQuery narrows a pantry's donor list. Blank fields match everything.
type ListDonorsQuery struct {
	Category string `query:"category"`
	Status   string `query:"status"`
}

// ManageDonorsUseCase keeps a pantry's donor contacts. Every operation requires the caller to
// manage the donor's pantry.
type ManageDonorsUseCase struct {
	Donors   port.DonorRepository
	Pantries port.PantryLookup
	Clock    port.Clock
	NewID    func() uuid.UUID
}

func NewManageDonorsUseCase(donors port.DonorRepository, pantries port.PantryLookup, clock port.Clock) *ManageDonorsUseCase {
	return &ManageDonorsUseCase{Donors: donors, Pantries: pantries, Clock: clock, NewID: uuid.New}
}

func (uc *ManageDonorsUseCase) List(ctx context.Context, actor pantries.Actor, pantryID string, query ListDonorsQuery) ([]domain.Donor, error) {
	pantry, err := uc.managedPantry(ctx, actor, pantryID)
	if err != nil {
		return nil, err
	}
	donors, err := uc.Donors.ListByPantry(ctx, pantry.ID)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}

	category := strings.TrimSpace(query.Category)
	status := domain.NormalizeDonorStatus(query.Status)
	out := make([]domain.Donor, 0, len(donors))
	for _, donor := range donors {
		if category != "" && !donor.Prefers(category) {
			continue
		}
		if status != domain.DonorStatusUnknown && donor.Status != status {
			continue
		}
		out = append(out, donor)
	}
	return out, nil
}

func (uc *ManageDonorsUseCase) Create(ctx context.Context, actor pantries.Actor, cmd domain.CreateDonorCommand) (*domain.Donor, error) {
	if err := validation.Struct(cmd, domain.ErrInvalidDonor); err != nil {
		return nil, err
	}
	pantry, err := uc.managedPantry(ctx, actor, cmd.PantryID)
	if err != nil {
		return nil, err
	}
	donor := cmd.NewDonor(uc.NewID(), pantry.ID, uc.Clock().UTC())
	if err := uc.Donors.Create(ctx, donor); err != nil {
		return nil, fmt.Errorf("create donor: %w", err)
	}
	slog.Info("donor created",
		slog.String("donorId", donor.ID.String()),
		slog.String("pantryId", pantry.ID.String()),
		slog.String("userId", actor.UserID),
	)
	return &donor, nil
}

func (uc *ManageDonorsUseCase) Update(ctx context.Context, actor pantries.Actor, donorID string, cmd domain.UpdateDonorCommand) (*domain.Donor, error) {
	if err := validation.Struct(cmd, domain.ErrInvalidDonor); err != nil {
		return nil, err
	}
	donor, err := uc.managedDonor(ctx, actor, donorID)
	if err != nil {
		return nil, err
	}
	cmd.Apply(donor)
	if err := uc.Donors.Update(ctx, *donor); err != nil {
		return nil, fmt.Errorf("update donor: %w", err)
	}
	slog.Info("donor updated", slog.String("donorId", donor.ID.String()), slog.String("userId", actor.UserID))
	return donor, nil
}

func (uc *ManageDonorsUseCase) Delete(ctx context.Context, actor pantries.Actor, donorID string) error {
	donor, err := uc.managedDonor(ctx, actor, donorID)
	if err != nil {
		return err
	}
	if err := uc.Donors.Delete(ctx, donor.ID); err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	slog.Info("donor deleted", slog.String("donorId", donor.ID.String()), slog.String("userId", actor.UserID))
	return nil
}

func (uc *ManageDonorsUseCase) managedPantry(ctx context.Context, actor pantries.Actor, pantryID string) (*pantries.Pantry, error) {
	id, err := pantries.ParseID(strings.TrimSpace(pantryID), pantries.ErrPantryNotFound)
	if err != nil {
		return nil, err
	}
	pantry, err := uc.Pantries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*pantry) {
		return nil, pantries.ErrNotPantryManager
	}
	return pantry, nil
}

func (uc *ManageDonorsUseCase) managedDonor(ctx context.Context, actor pantries.Actor, donorID string) (*domain.Donor, error) {
	id, err := pantries.ParseID(strings.TrimSpace(donorID), domain.ErrDonorNotFound)
	if err != nil {
		return nil, err
	}
	donor, err := uc.Donors.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := uc.managedPantry(ctx, actor, donor.PantryID.String()); err != nil {
		return nil, err
	}
	return donor, nil
}
