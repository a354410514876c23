package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvents(n int) *fakeEventRepo {
	repo := newFakeEventRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		e := &model.Event{Name: fmt.Sprintf("Event %02d", i), IsPublic: true}
		e.ID = uuid.New()
		e.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		repo.events[e.ID] = e
	}
	return repo
}

func TestListEvents_Pagination(t *testing.T) {
	repo := seedEvents(25)
	svc := NewEventService(repo, newFakeRegistrationRepo())

	page, err := svc.List(context.Background(), ListEventsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 25, page.TotalCount)
	require.Len(t, page.Events, 10)
	assert.Equal(t, "Event 24", page.Events[0].Name, "newest first")

	page, err = svc.List(context.Background(), ListEventsQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Events, 5)
	assert.Equal(t, 20, repo.lastList.Offset)
}

func TestListEvents_ClampsLimitAndPage(t *testing.T) {
	repo := seedEvents(3)
	svc := NewEventService(repo, newFakeRegistrationRepo())

	page, err := svc.List(context.Background(), ListEventsQuery{Limit: 1_000_000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastList.Limit)
	assert.Len(t, page.Events, 3)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.List(context.Background(), ListEventsQuery{Page: math.MaxInt, Limit: 50})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, repo.lastList.Offset, 0)
	assert.LessOrEqual(t, repo.lastList.Offset, math.MaxInt32)
	assert.Equal(t, repo.lastList.Offset/50+1, page.CurrentPage)
	assert.Empty(t, page.Events, "a page past the end is empty, never page 1")
}

func TestListEvents_SearchAndEmpty(t *testing.T) {
	repo := seedEvents(3)
	svc := NewEventService(repo, newFakeRegistrationRepo())

	page, err := svc.List(context.Background(), ListEventsQuery{Search: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, page.Events)
	assert.Empty(t, page.Events)
	assert.Zero(t, page.TotalPages)
}

func TestListEvents_CountFailureFailsList(t *testing.T) {
	repo := seedEvents(3)
	repo.countErr = errBoom
	svc := NewEventService(repo, newFakeRegistrationRepo())

	_, err := svc.List(context.Background(), ListEventsQuery{})
	assert.ErrorIs(t, err, errBoom)
}

func TestCreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeRegistrationRepo())
	creator := uuid.New()
	start := time.Now().Add(time.Hour)
	end := start.Add(2 * time.Hour)

	ev, err := svc.Create(context.Background(), &CreateEventRequest{Name: "Expo", StartTime: &start, EndTime: &end}, creator)
	require.NoError(t, err)
	assert.True(t, ev.IsPublic, "isPublic defaults to true")
	assert.True(t, ev.IsCreatedBy(creator))

	private := false
	ev, err = svc.Create(context.Background(), &CreateEventRequest{Name: "Closed", IsPublic: &private}, creator)
	require.NoError(t, err)
	assert.False(t, ev.IsPublic)
}

func TestCreateEvent_Rejects(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), newFakeRegistrationRepo())
	start := time.Now()

	_, err := svc.Create(context.Background(), &CreateEventRequest{Name: "Bad", StartTime: &start, EndTime: &start}, uuid.New())
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = svc.Create(context.Background(), &CreateEventRequest{}, uuid.New())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateEvent_ChecksMergedWindow(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeRegistrationRepo())
	start := time.Now().Add(time.Hour)
	end := start.Add(time.Hour)
	ev, err := svc.Create(context.Background(), &CreateEventRequest{Name: "Talk", StartTime: &start, EndTime: &end}, uuid.Nil)
	require.NoError(t, err)
	assert.Nil(t, ev.CreatedByID)

	late := end.Add(time.Hour)
	_, err = svc.Update(context.Background(), ev.ID, &UpdateEventRequest{StartTime: &late})
	assert.ErrorIs(t, err, ErrInvalidTime)

	name := "Keynote"
	updated, err := svc.Update(context.Background(), ev.ID, &UpdateEventRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Keynote", updated.Name)

	_, err = svc.Update(context.Background(), uuid.New(), &UpdateEventRequest{Name: &name})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpcoming(t *testing.T) {
	repo := newFakeEventRepo()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)
	repo.events[uuid.New()] = &model.Event{Name: "past", StartTime: &past}
	repo.events[uuid.New()] = &model.Event{Name: "future", StartTime: &future}

	svc := NewEventService(repo, newFakeRegistrationRepo()).(*eventService)
	svc.now = func() time.Time { return now }

	events, err := svc.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "future", events[0].Name)
}
