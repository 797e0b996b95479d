package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEncounterNotReported matches any EncounterNotReportedError with errors.Is.
var ErrEncounterNotReported = errors.New("encounter not reported")

// EncounterNotReportedError is returned when an update lacks the report of a player.
type EncounterNotReportedError struct {
	Agent int
}

func (e *EncounterNotReportedError) Error() string {
	return fmt.Sprintf("update does not include requested encounter report for agent: %d", e.Agent)
}

func (e *EncounterNotReportedError) Is(target error) bool {
	return target == ErrEncounterNotReported
}
