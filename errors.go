package formsync

import (
	"errors"
	"fmt"
)

// ErrProviderNotSet reports that the session was asked to apply or answer a
// readiness check before a default provider was registered or explicitly
// disabled. Fatal to initialization.
var ErrProviderNotSet = errors.New("formsync: default provider not configured")

// ErrNoSelection reports that an exclusive-choice widget had no selected
// child at extraction time.
var ErrNoSelection = errors.New("formsync: no choice selected")

// ErrUnknownKind reports a widget kind outside the closed enumeration.
var ErrUnknownKind = errors.New("formsync: unknown widget kind")

// ErrNilWidget reports an extraction attempt without a widget.
var ErrNilWidget = errors.New("formsync: widget is nil")

// SelectionError identifies the choice widget that failed extraction.
type SelectionError struct {
	OptionID string
	GroupID  string
}

func (e *SelectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.GroupID != "" {
		return fmt.Sprintf("formsync: no selection in choice %q (group %q)", e.OptionID, e.GroupID)
	}
	return fmt.Sprintf("formsync: no selection in choice %q", e.OptionID)
}

func (e *SelectionError) Unwrap() error {
	return ErrNoSelection
}

// ProviderError captures default-provider metadata alongside the originating
// error. Expression providers surface these through logging rather than
// returning them, keeping the DefaultProvider contract infallible.
type ProviderError struct {
	Engine string
	Expr   string
	ID     string
	Err    error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("formsync: %s provider %s id=%s: %v", e.Engine, describeExpression(e.Expr), e.ID, e.Err)
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapProviderError(engine, expr, id string, err error) error {
	if err == nil {
		return nil
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		if provErr.Engine == "" {
			provErr.Engine = engine
		}
		if provErr.Expr == "" {
			provErr.Expr = expr
		}
		if provErr.ID == "" {
			provErr.ID = id
		}
		return provErr
	}

	return &ProviderError{
		Engine: engine,
		Expr:   expr,
		ID:     id,
		Err:    err,
	}
}

func missingCapability(w Widget, capability string) error {
	return fmt.Errorf("formsync: widget %q (%s) does not expose %s", w.OptionID(), w.Kind(), capability)
}
