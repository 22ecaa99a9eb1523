package screens

import (
	"errors"
	"fmt"
	"sort"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
)

// genericFailure is shown for storage faults; the details go to the log.
const genericFailure = "The operation could not be completed. See the log for details."

// Factory builds a screen with fresh state.
type Factory func() Screen

// Navigator switches between screens. Switching rebuilds the target
// screen, so form state does not survive navigation.
type Navigator struct {
	dialogs   Dialogs
	factories map[string]Factory
	order     []string
	current   Screen
}

// NewNavigator creates an empty navigator.
func NewNavigator(dialogs Dialogs) *Navigator {
	return &Navigator{dialogs: dialogs, factories: make(map[string]Factory)}
}

// Register adds a screen under name. Names are listed in registration order.
func (n *Navigator) Register(name string, factory Factory) {
	if _, ok := n.factories[name]; !ok {
		n.order = append(n.order, name)
	}
	n.factories[name] = factory
}

// Names lists the registered screens.
func (n *Navigator) Names() []string {
	return append([]string(nil), n.order...)
}

// Current returns the open screen, if any.
func (n *Navigator) Current() Screen {
	return n.current
}

// Open switches to the named screen, rebuilding it unless it is already open.
func (n *Navigator) Open(name string) (Screen, error) {
	if n.current != nil && n.current.Name() == name {
		return n.current, nil
	}
	factory, ok := n.factories[name]
	if !ok {
		names := n.Names()
		sort.Strings(names)
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown screen %q, screens: %v", name, names))
	}
	n.current = factory()
	logger.Get().Debugw("Screen opened", "screen", name)
	return n.current, nil
}

// Dispatch runs action on the named screen. Failures are shown through
// the dialogs and reported as a nil view.
func (n *Navigator) Dispatch(name, action string, form Form) *View {
	screen, err := n.Open(name)
	if err != nil {
		n.Report(err)
		return nil
	}

	view, err := screen.Do(action, form)
	if err != nil {
		n.Report(err)
		return nil
	}
	return view
}

// Report shows err to the operator. Validation, not-found and conflict
// errors show their own message; anything else shows a generic message
// and is logged.
func (n *Navigator) Report(err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("Unexpected error", "error", err)
		n.dialogs.Error("Error", genericFailure)
		return
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		n.dialogs.Error("Invalid input", appErr.Message)
	case apperrors.KindNotFound:
		n.dialogs.Error("Not found", appErr.Message)
	case apperrors.KindConflict:
		n.dialogs.Error("Not allowed", appErr.Message)
	default:
		logger.Get().Errorw("Operation failed", "code", appErr.Code, "error", err, "internal", appErr.Internal)
		if appErr.Code == apperrors.ErrExportFailed.Code {
			n.dialogs.Error("Export failed", appErr.Message)
			return
		}
		n.dialogs.Error("Error", genericFailure)
	}
}
