package garden

import (
	"errors"
	"fmt"

	"github.com/ZamarianPatrick/oasis-backend/model"
)

const (
	NotReadyTitle   = "Keep growing!"
	NotReadyMessage = "You cannot get a new plant until you are done growing the current one."
)

var (
	ErrNotReady       = errors.New("current plant is not fully grown")
	ErrInvalidAmount  = fmt.Errorf("water amount must be between 1 and %d", model.MaxWaterAmount)
	ErrNicknameLength = fmt.Errorf("nickname must be at most %d characters", model.MaxNicknameLength)
)

// NotReadyError is returned when a replacement is requested before the
// current plant reached model.PhaseGrown. errors.Is(err, ErrNotReady) holds.
type NotReadyError struct {
	Phase int
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: phase %d of %d", ErrNotReady, e.Phase, model.PhaseGrown)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// PersistenceError wraps a failed read or commit. The store is left as it was.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
