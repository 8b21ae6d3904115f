package logging

import (
	"context"
	"errors"
)

// errorWithLogCtx ошибка, запомнившая поля логирования места, где она возникла.
type errorWithLogCtx struct {
	next error
	ctx  logCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.next.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.next
}

// WrapError привязывает к err поля из ctx. nil остаётся nil.
// Повторная обёртка не вкладывает ошибки друг в друга, а дополняет уже сохранённые поля.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	c := fromContext(ctx)

	var inner *errorWithLogCtx
	if errors.As(err, &inner) {
		inner.ctx = inner.ctx.merge(c)
		return err
	}
	return &errorWithLogCtx{next: err, ctx: c}
}

// ErrorCtx переносит поля из ошибки в ctx. Поля, уже заданные в ctx, имеют приоритет.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) {
		return context.WithValue(ctx, key, fromContext(ctx).merge(e.ctx))
	}
	return ctx
}
