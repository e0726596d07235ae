package service

import (
	"context"
	"testing"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"github.com/curtisos/curtisos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapUseCaseObserver_LogsSuccessAndFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewZapUseCaseObserver(zap.New(core))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "convert-lead", Success: true, Fields: map[string]any{"lead_id": int64(3)}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "sync-email", Err: errInjected})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "convert-lead", entries[0].ContextMap()["use_case"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["lead_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, errInjected.Error(), entries[1].ContextMap()["error"])
}

func TestNewZapUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewZapUseCaseObserver(nil))
}

func TestLeadConvert_ReportsUseCase(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)

	leads := repository.NewSQLiteLeadRepo(database)
	svc := NewLeadService(leads, repository.NewSQLiteActivityRepo(database),
		testutil.NewTestUoW(database), nil, NewZapUseCaseObserver(zap.New(core)))

	l := &domain.Lead{Name: "Dana"}
	require.NoError(t, svc.Create(ctx, l))
	_, err := svc.Convert(ctx, l.ID, ConvertLeadRequest{})
	require.NoError(t, err)

	entries := logs.FilterField(zap.String("use_case", "convert-lead")).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, true, fields["success"])
	assert.Contains(t, fields, "client_id")
	assert.Contains(t, fields, "project_id")
}
