package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/realtime/application/port"
	"pantryHub/internal/shared/auth"
)

// ErrMissingPantry is returned when a watcher connects without a pantry id.
var ErrMissingPantry = errors.New("missing pantry id")

type WatchPantryInput struct {
	Token    string
	PantryID string
}

// WatchPantryOutput carries the caller (nil for anonymous watchers) and the initial snapshot.
type WatchPantryOutput struct {
	Claims *auth.Claims
	View   *pantries.PantryView
}

// WatchPantryUseCase admits a websocket watcher to a pantry room. Individuals may watch
// anonymously; a token that is present must be valid.
type WatchPantryUseCase struct {
	Validator auth.TokenValidator
	Viewer    port.PantryViewer
}

func NewWatchPantryUseCase(validator auth.TokenValidator, viewer port.PantryViewer) *WatchPantryUseCase {
	return &WatchPantryUseCase{Validator: validator, Viewer: viewer}
}

func (uc *WatchPantryUseCase) Execute(ctx context.Context, input WatchPantryInput) (*WatchPantryOutput, error) {
	pantryID := strings.TrimSpace(input.PantryID)
	if pantryID == "" {
		return nil, ErrMissingPantry
	}

	var claims *auth.Claims
	if token := strings.TrimSpace(input.Token); token != "" {
		validated, err := uc.Validator.Validate(token)
		if err != nil {
			slog.Warn("watch-pantry token validation failed", slog.String("pantryId", pantryID), slog.Any("error", err))
			return nil, err
		}
		claims = validated
	}

	view, err := uc.Viewer.Execute(ctx, actorOf(claims), pantryID)
	if err != nil {
		return nil, err
	}

	slog.Info("watch-pantry admitted",
		slog.String("pantryId", pantryID),
		slog.String("userId", claims.UserID()),
		slog.Bool("anonymous", claims == nil),
	)
	return &WatchPantryOutput{Claims: claims, View: view}, nil
}

// Snapshot reloads the pantry view for a connected watcher. claims is nil for anonymous watchers;
// inactive pantries stay hidden from callers who cannot manage them.
func (uc *WatchPantryUseCase) Snapshot(ctx context.Context, claims *auth.Claims, pantryID string) (*pantries.PantryView, error) {
	return uc.Viewer.Execute(ctx, actorOf(claims), strings.TrimSpace(pantryID))
}

// CanWatch reports whether the caller may follow the pantry's room.
func (uc *WatchPantryUseCase) CanWatch(ctx context.Context, claims *auth.Claims, pantryID string) error {
	_, err := uc.Snapshot(ctx, claims, pantryID)
	return err
}

func actorOf(claims *auth.Claims) pantries.Actor {
	if claims == nil {
		return pantries.Actor{}
	}
	return pantries.Actor{UserID: claims.UserID(), Admin: claims.HasAnyRole(auth.RoleAdmin)}
}
