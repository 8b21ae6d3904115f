package logging

import "context"

func update(ctx context.Context, set func(*logCtx)) context.Context {
	c := fromContext(ctx)
	set(&c)
	return context.WithValue(ctx, key, c)
}

// WithLogRequestID добавляет request ID в контекст.
func WithLogRequestID(ctx context.Context, requestID string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestID = requestID })
}

// WithLogRequestPath добавляет путь запроса в контекст.
func WithLogRequestPath(ctx context.Context, path string) context.Context {
	return update(ctx, func(c *logCtx) { c.Path = path })
}

func WithLogRequestMethod(ctx context.Context, method string) context.Context {
	return update(ctx, func(c *logCtx) { c.Method = method })
}

func WithLogRequestStatus(ctx context.Context, status int) context.Context {
	return update(ctx, func(c *logCtx) { c.Status = status })
}

func WithLogRequestDuration(ctx context.Context, duration string) context.Context {
	return update(ctx, func(c *logCtx) { c.RequestDuration = duration })
}

// WithLogExchangeID добавляет ID обмена в контекст.
func WithLogExchangeID(ctx context.Context, exchangeID string) context.Context {
	return update(ctx, func(c *logCtx) { c.ExchangeID = exchangeID })
}

func WithLogParticipantID(ctx context.Context, participantID string) context.Context {
	return update(ctx, func(c *logCtx) { c.ParticipantID = participantID })
}

// WithLogParticipantsCount добавляет размер состава, с которым идёт жеребьёвка.
func WithLogParticipantsCount(ctx context.Context, cnt int) context.Context {
	return update(ctx, func(c *logCtx) { c.ParticipantsCount = cnt })
}

func WithLogGroupID(ctx context.Context, groupID string) context.Context {
	return update(ctx, func(c *logCtx) { c.GroupID = groupID })
}

// WithLogDrawAttempts добавляет число попыток жеребьёвки в контекст.
func WithLogDrawAttempts(ctx context.Context, attempts int) context.Context {
	return update(ctx, func(c *logCtx) { c.DrawAttempts = attempts })
}
