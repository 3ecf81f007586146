package workflow

import "context"

// OptimisticMutation is the one sanctioned optimistic-update shape: apply a
// single-row, single-field change locally, confirm it remotely, revert on
// failure. It must stay this narrow; multi-row or multi-field mutations go
// through the normal write-then-refetch path.
type OptimisticMutation struct {
	Apply   func()
	Revert  func()
	Confirm func(ctx context.Context) error
}

// Run applies the local change, then confirms. On confirmation failure the
// local change is reverted and the error returned for display.
func (m OptimisticMutation) Run(ctx context.Context) error {
	m.Apply()
	if err := m.Confirm(ctx); err != nil {
		m.Revert()
		return err
	}
	return nil
}
