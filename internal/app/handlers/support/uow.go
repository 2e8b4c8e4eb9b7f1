package support

import (
	"context"

	"fleetrent/internal/app/uow"
)

// BeginUnit reuses a unit of work from context or starts a fresh one. The
// returned done func must be called with the handler's error: it commits on
// nil and rolls back otherwise, but only for units this helper opened.
func BeginUnit(ctx context.Context, factory uow.UoWFactory, opts uow.TxOptions) (uow.UnitOfWork, context.Context, func(error) error, error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		noop := func(err error) error { return err }
		return unit, ctx, noop, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, opts)
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.ContextWithUnitOfWork(ctx, newUnit)
	done := func(err error) error {
		if err != nil {
			_ = newUnit.Rollback(execCtx)
			return err
		}
		return newUnit.Commit(execCtx)
	}
	return newUnit, execCtx, done, nil
}

// BeginReadOnlyUnit is BeginUnit for query handlers; the unit is rolled
// back unconditionally via the cleanup func.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	unit, ok := uow.FromContext(ctx)
	if ok {
		return unit, ctx, func() {}, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	newUnit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.ContextWithUnitOfWork(ctx, newUnit)
	cleanup := func() {
		_ = newUnit.Rollback(execCtx)
	}
	return newUnit, execCtx, cleanup, nil
}
