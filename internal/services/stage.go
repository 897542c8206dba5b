package services

import (
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

// forwardTransitions is the workflow the dashboard exposes. Scrap is reachable from every open or
// repaired stage; nothing leaves Scrap.
var forwardTransitions = map[entities.RequestStage][]entities.RequestStage{
	entities.StageNew:        {entities.StageInProgress, entities.StageRepaired, entities.StageScrap},
	entities.StageInProgress: {entities.StageRepaired, entities.StageScrap},
	entities.StageRepaired:   {entities.StageScrap},
}

// StagePolicy decides which stage moves are accepted.
type StagePolicy struct {
	// Strict limits moves to forwardTransitions. When false any stage may follow any other.
	Strict bool
}

// Check returns a ValidationError when the move from -> to is not allowed. A move to the same
// stage is always allowed.
func (p StagePolicy) Check(from, to entities.RequestStage) error {
	if !to.IsValid() {
		return apperrors.NewValidationError("stage", "unknown stage %q", to)
	}
	if from == to || !p.Strict {
		return nil
	}
	for _, next := range forwardTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperrors.NewValidationError("stage", "cannot move a request from %q to %q", from, to)
}
