package service

import (
	"context"
	"testing"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistration_DefaultsAndUniqueness(t *testing.T) {
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeEventRepo())
	req := &CreateRegistrationRequest{UserID: uuid.New(), EventID: uuid.New()}

	reg, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationConfirmed, reg.Status)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = svc.Create(context.Background(), &CreateRegistrationRequest{EventID: uuid.New()})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateRegistration_FacultyOrCreatorOnly(t *testing.T) {
	creator := uuid.New()
	event := &model.Event{Name: "Fest", CreatedByID: &creator}
	events := newFakeEventRepo(event)
	reg := &model.EventRegistration{UserID: uuid.New(), EventID: event.ID, Status: model.RegistrationConfirmed}
	svc := NewRegistrationService(newFakeRegistrationRepo(reg), events)
	req := &UpdateRegistrationRequest{Status: "cancelled"}

	_, err := svc.Update(context.Background(), reg.ID, req, Actor{ID: uuid.New(), Kind: model.UserKindStudent})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), reg.ID, req, Actor{ID: creator, Kind: model.UserKindStudent})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)

	req.Status = "waitlisted"
	updated, err = svc.Update(context.Background(), reg.ID, req, Actor{ID: uuid.New(), Kind: model.UserKindFaculty})
	require.NoError(t, err)
	assert.Equal(t, "waitlisted", updated.Status)

	_, err = svc.Update(context.Background(), uuid.New(), req, Actor{Kind: model.UserKindFaculty})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
