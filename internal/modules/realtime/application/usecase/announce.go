package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pantries "pantryHub/internal/modules/pantries/domain"
	"pantryHub/internal/modules/realtime/application/port"
	"pantryHub/internal/modules/realtime/domain"
)

// ErrInvalidAnnouncement is returned for announcements without a body or with oversized fields.
var ErrInvalidAnnouncement = errors.New("invalid announcement")

const (
	maxAnnouncementTitle = 120
	maxAnnouncementBody  = 2000
)

type AnnounceInput struct {
	PantryID string
	Title    string
	Body     string
}

// AnnounceUseCase lets pantry staff push a notice ("truck arriving at 3 PM") to current watchers.
// Announcements are not stored.
type AnnounceUseCase struct {
	Viewer    port.PantryViewer
	Broadcast *BroadcastUseCase
	Now       func() time.Time
}

func NewAnnounceUseCase(viewer port.PantryViewer, broadcast *BroadcastUseCase, now func() time.Time) *AnnounceUseCase {
	if now == nil {
		now = time.Now
	}
	return &AnnounceUseCase{Viewer: viewer, Broadcast: broadcast, Now: now}
}

func (uc *AnnounceUseCase) Execute(ctx context.Context, actor pantries.Actor, input AnnounceInput) (*domain.Announcement, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	switch {
	case body == "":
		return nil, fmt.Errorf("%w: body is required", ErrInvalidAnnouncement)
	case len(title) > maxAnnouncementTitle:
		return nil, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidAnnouncement, maxAnnouncementTitle)
	case len(body) > maxAnnouncementBody:
		return nil, fmt.Errorf("%w: body must be at most %d characters", ErrInvalidAnnouncement, maxAnnouncementBody)
	}

	view, err := uc.Viewer.Execute(ctx, actor, input.PantryID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(view.Pantry) {
		return nil, pantries.ErrNotPantryManager
	}

	announcement := domain.Announcement{
		Title:    title,
		Body:     body,
		Author:   actor.UserID,
		PostedAt: uc.Now().UTC(),
	}
	uc.Broadcast.Execute(ctx, domain.BuildAnnouncementMessage(view.ID.String(), announcement))
	slog.Info("announcement posted", slog.String("pantryId", view.ID.String()), slog.String("userId", actor.UserID))
	return &announcement, nil
}
