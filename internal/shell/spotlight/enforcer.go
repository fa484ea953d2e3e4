// Package spotlight keeps at most one project in the spotlight while projects
// are created and edited.
package spotlight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/artpar/portfolio/internal/core/domain"
	core "github.com/artpar/portfolio/internal/core/spotlight"
	"github.com/artpar/portfolio/internal/shell/store"
)

// ErrSpotlightConflict is returned under the confirm policy when another
// project holds the spotlight and the caller has not confirmed the takeover.
var ErrSpotlightConflict = errors.New("another project is already in the spotlight")

// ConflictError carries the current holder so the caller can ask for confirmation.
type ConflictError struct {
	Holder core.Holder
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %q (id %d)", ErrSpotlightConflict.Error(), e.Holder.Title, e.Holder.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrSpotlightConflict
}

// Result describes what a save did to the spotlight.
type Result struct {
	Outcome core.Outcome
	// Previous is the holder that was cleared, set only for a takeover.
	Previous *core.Holder
}

// Enforcer persists projects while maintaining the single-spotlight invariant.
type Enforcer struct {
	store  store.Store
	policy core.Policy
	logger *slog.Logger
}

// NewEnforcer creates an enforcer over s using policy.
func NewEnforcer(s store.Store, policy core.Policy, logger *slog.Logger) *Enforcer {
	if logger == nil {
		logger = slog.Default()
	}
	if policy == "" {
		policy = core.PolicyAuto
	}
	return &Enforcer{store: s, policy: policy, logger: logger}
}

// Policy returns the configured conflict policy.
func (e *Enforcer) Policy() core.Policy {
	return e.policy
}

// SaveProject creates p (ID 0) or updates it, then applies p.IsSpotlight.
// The record write and the spotlight change commit in one transaction, so a
// conflict or failure leaves both the project and the previous holder untouched.
func (e *Enforcer) SaveProject(ctx context.Context, p *domain.Project, confirmed bool) (Result, error) {
	var result Result
	want := p.IsSpotlight
	creating := p.ID == 0

	err := e.store.WithTx(ctx, func(tx store.Store) error {
		result = Result{Outcome: core.NoConflict}

		if want {
			current, err := currentHolder(ctx, tx)
			if err != nil {
				return err
			}
			result.Outcome = core.Decide(p.ID, current, e.policy, confirmed)
			switch result.Outcome {
			case core.NeedsConfirmation:
				return &ConflictError{Holder: *current}
			case core.Takeover:
				result.Previous = current
			}
		}

		if creating {
			if err := tx.CreateProject(ctx, p); err != nil {
				return err
			}
		} else {
			if err := tx.UpdateProject(ctx, p); err != nil {
				return err
			}
		}

		switch {
		case want:
			if err := tx.ClaimSpotlight(ctx, p.ID); err != nil {
				return err
			}
		case !creating:
			if err := tx.ReleaseSpotlight(ctx, p.ID); err != nil {
				return err
			}
		}
		p.IsSpotlight = want
		return nil
	})
	if err != nil {
		if creating {
			p.ID = 0
		}
		return Result{}, err
	}

	if result.Previous != nil {
		e.logger.Info("spotlight moved",
			"project_id", p.ID,
			"previous_id", result.Previous.ID,
			"policy", string(e.policy),
		)
	}
	return result, nil
}

// Holder returns the current spotlight holder, or nil when there is none.
func (e *Enforcer) Holder(ctx context.Context) (*core.Holder, error) {
	return currentHolder(ctx, e.store)
}

func currentHolder(ctx context.Context, s store.Store) (*core.Holder, error) {
	p, err := s.GetSpotlightProject(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &core.Holder{ID: p.ID, Title: p.Title}, nil
}
