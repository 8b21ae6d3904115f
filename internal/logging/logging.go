package logging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
)

type keyType int

const key = keyType(0)

// logCtx поля запроса и обмена, которые LoggerImpl дописывает в каждую запись.
type logCtx struct {
	RequestID         string
	Status            int
	RequestDuration   string
	Method            string
	Path              string
	ExchangeID        string
	ParticipantID     string
	ParticipantsCount int
	GroupID           string
	DrawAttempts      int
}

// attrs возвращает непустые поля в фиксированном порядке.
func (c logCtx) attrs() []slog.Attr {
	out := make([]slog.Attr, 0, 10)
	str := func(k, v string) {
		if v != "" {
			out = append(out, slog.String(k, v))
		}
	}
	num := func(k string, v int) {
		if v != 0 {
			out = append(out, slog.Int(k, v))
		}
	}

	str("requestid", c.RequestID)
	str("method", c.Method)
	str("path", c.Path)
	num("status", c.Status)
	str("requestduration", c.RequestDuration)
	str("exchangeid", c.ExchangeID)
	str("participantid", c.ParticipantID)
	num("participantscount", c.ParticipantsCount)
	str("groupid", c.GroupID)
	num("drawattempts", c.DrawAttempts)
	return out
}

// merge дополняет c полями из other, не перетирая уже заданные.
func (c logCtx) merge(other logCtx) logCtx {
	if c.RequestID == "" {
		c.RequestID = other.RequestID
	}
	if c.Status == 0 {
		c.Status = other.Status
	}
	if c.RequestDuration == "" {
		c.RequestDuration = other.RequestDuration
	}
	if c.Method == "" {
		c.Method = other.Method
	}
	if c.Path == "" {
		c.Path = other.Path
	}
	if c.ExchangeID == "" {
		c.ExchangeID = other.ExchangeID
	}
	if c.ParticipantID == "" {
		c.ParticipantID = other.ParticipantID
	}
	if c.ParticipantsCount == 0 {
		c.ParticipantsCount = other.ParticipantsCount
	}
	if c.GroupID == "" {
		c.GroupID = other.GroupID
	}
	if c.DrawAttempts == 0 {
		c.DrawAttempts = other.DrawAttempts
	}
	return c
}

func fromContext(ctx context.Context) logCtx {
	if c, ok := ctx.Value(key).(logCtx); ok {
		return c
	}
	return logCtx{}
}

// LoggerImpl оборачивает slog.Handler для добавления контекстной информации.
type LoggerImpl struct {
	next slog.Handler
}

// NewLoggerImpl оборачивает next, дописывая в каждую запись поля из контекста запроса.
func NewLoggerImpl(next slog.Handler) *LoggerImpl {
	return &LoggerImpl{next: next}
}

func (h *LoggerImpl) Enabled(ctx context.Context, rec slog.Level) bool {
	return h.next.Enabled(ctx, rec)
}

// Handle добавляет к записи поля из контекста и source вызова.
func (h *LoggerImpl) Handle(ctx context.Context, rec slog.Record) error {
	rec.AddAttrs(fromContext(ctx).attrs()...)

	if rec.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := fs.Next()
		rec.Add("source", fmt.Sprintf("%s:%d", f.File, f.Line))
	}

	return h.next.Handle(ctx, rec)
}

func (h *LoggerImpl) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LoggerImpl{next: h.next.WithAttrs(attrs)}
}

func (h *LoggerImpl) WithGroup(name string) slog.Handler {
	return &LoggerImpl{next: h.next.WithGroup(name)}
}
