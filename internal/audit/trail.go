package audit

import (
	"context"
	"time"

	"github.com/nerrad567/smarthome-core/internal/actuator"
)

// Trail records accepted actuator targets. It implements
// service.TargetPublisher, so commands from every transport are captured.
type Trail struct {
	repo Repository
	now  func() time.Time
}

// NewTrail creates a trail writing to repo.
func NewTrail(repo Repository) *Trail {
	return &Trail{repo: repo, now: time.Now}
}

// PublishTarget records the new target of a.
func (t *Trail) PublishTarget(ctx context.Context, a actuator.Actuator) error {
	details := map[string]any{
		"device_id":        a.DeviceID().String(),
		"functionality_id": a.FunctionalityID().String(),
		"kind":             string(a.Kind()),
	}
	if target, ok := a.Target(); ok {
		details["target"] = target
	}
	return t.repo.Create(ctx, &Entry{
		Action:     ActionCommand,
		EntityType: EntityActuator,
		EntityID:   a.ID().String(),
		Details:    details,
		CreatedAt:  t.now(),
	})
}
