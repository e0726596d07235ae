package service

import (
	"context"
	"testing"

	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
	"github.com/curtisos/curtisos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadService_CreateAppliesDefaultsAndRecordsActivity(t *testing.T) {
	database, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	l := &domain.Lead{Name: "Dana", Company: "Acme Bakery"}
	require.NoError(t, svc.Leads.Create(ctx, l))

	assert.NotZero(t, l.ID)
	assert.Equal(t, domain.LeadNew, l.Status)
	assert.Equal(t, domain.ContextGeneral, l.Context)
	assert.False(t, l.CreatedAt.IsZero())

	acts := listActivities(t, database, domain.EntityLead, l.ID)
	require.Len(t, acts, 1)
	assert.Equal(t, domain.ActivityCreated, acts[0].Kind)
	assert.Contains(t, acts[0].Description, "Acme Bakery")
}

func TestLeadService_CreateRejectsInvalid(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)

	err := svc.Leads.Create(context.Background(), &domain.Lead{Name: " ", Value: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestLeadService_UpdateStatusRecordsStatusChange(t *testing.T) {
	database, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	l := &domain.Lead{Name: "Dana"}
	require.NoError(t, svc.Leads.Create(ctx, l))

	status := domain.LeadQualified
	updated, err := svc.Leads.Update(ctx, l.ID, domain.LeadPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadQualified, updated.Status)

	kinds := activityKinds(listActivities(t, database, domain.EntityLead, l.ID))
	assert.Contains(t, kinds, domain.ActivityStatusChanged)
}

func TestLeadService_ListRejectsUnknownContext(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)

	_, err := svc.Leads.List(context.Background(), domain.LeadFilter{Context: "moon"})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLeadService_Convert(t *testing.T) {
	database, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	l := &domain.Lead{Name: "Dana", Company: "Acme Bakery", Email: "dana@acme.test", Value: 4500}
	require.NoError(t, svc.Leads.Create(ctx, l))

	conv, err := svc.Leads.Convert(ctx, l.ID, ConvertLeadRequest{})
	require.NoError(t, err)

	assert.Equal(t, domain.LeadWon, conv.Lead.Status)
	assert.Equal(t, "Dana", conv.Client.Name)
	assert.Equal(t, "dana@acme.test", conv.Client.Email)
	require.NotNil(t, conv.Client.LeadID)
	assert.Equal(t, l.ID, *conv.Client.LeadID)
	assert.Equal(t, "Acme Bakery Website", conv.Project.Name)
	assert.Equal(t, 4500.0, conv.Project.Budget)
	require.NotNil(t, conv.Project.ClientID)
	assert.Equal(t, conv.Client.ID, *conv.Project.ClientID)

	stored, err := svc.Leads.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadWon, stored.Status)

	kinds := activityKinds(listActivities(t, database, domain.EntityLead, l.ID))
	assert.Contains(t, kinds, domain.ActivityConverted)
}

func TestLeadService_ConvertWithOverrides(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	l := &domain.Lead{Name: "Sam"}
	require.NoError(t, svc.Leads.Create(ctx, l))

	budget := 1200.0
	conv, err := svc.Leads.Convert(ctx, l.ID, ConvertLeadRequest{ProjectName: "Shop relaunch", Budget: &budget})
	require.NoError(t, err)
	assert.Equal(t, "Shop relaunch", conv.Project.Name)
	assert.Equal(t, 1200.0, conv.Project.Budget)
}

func TestLeadService_ConvertNameFallsBackToContactName(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	l := &domain.Lead{Name: "Sam"}
	require.NoError(t, svc.Leads.Create(ctx, l))

	conv, err := svc.Leads.Convert(ctx, l.ID, ConvertLeadRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Sam Website", conv.Project.Name)
}

func TestLeadService_ConvertErrors(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	ctx := context.Background()

	_, err := svc.Leads.Convert(ctx, 999, ConvertLeadRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	l := &domain.Lead{Name: "Won already", Status: domain.LeadWon}
	require.NoError(t, svc.Leads.Create(ctx, l))
	_, err = svc.Leads.Convert(ctx, l.ID, ConvertLeadRequest{})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)

	negative := -5.0
	_, err = svc.Leads.Convert(ctx, l.ID, ConvertLeadRequest{Budget: &negative})
	assert.ErrorAs(t, err, &verr)
}

func TestLeadService_ConvertRollsBackOnFailure(t *testing.T) {
	// Exec order inside the transaction: client insert, project insert,
	// lead update, activity insert.
	for _, failOn := range []int32{2, 3, 4} {
		database := testutil.NewTestDB(t)
		ctx := context.Background()
		leads := repository.NewSQLiteLeadRepo(database)

		l := testutil.NewTestLead("Dana", testutil.WithLeadCompany("Acme"))
		require.NoError(t, leads.Create(ctx, l))

		svc := NewLeadService(leads, repository.NewSQLiteActivityRepo(database),
			&testutil.FailOnNthExecUoW{DB: database, FailOn: failOn, Err: errInjected}, nil)

		_, err := svc.Convert(ctx, l.ID, ConvertLeadRequest{})
		require.ErrorIs(t, err, errInjected, "failOn=%d", failOn)

		clients, err := repository.NewSQLiteClientRepo(database).List(ctx, domain.ClientFilter{})
		require.NoError(t, err)
		assert.Empty(t, clients, "failOn=%d", failOn)

		projects, err := repository.NewSQLiteProjectRepo(database).List(ctx, domain.ProjectFilter{})
		require.NoError(t, err)
		assert.Empty(t, projects, "failOn=%d", failOn)

		stored, err := leads.GetByID(ctx, l.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.LeadNew, stored.Status, "failOn=%d", failOn)

		assert.Empty(t, listActivities(t, database, domain.EntityLead, l.ID), "failOn=%d", failOn)
	}
}

func TestLeadService_DeleteMissing(t *testing.T) {
	_, svc := newTestServices(t, nil, nil)
	assert.ErrorIs(t, svc.Leads.Delete(context.Background(), 42), domain.ErrNotFound)
}
