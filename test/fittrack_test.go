//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/fitstats/activities"
	"github.com/2beens/fittrack/internal/fitstats/stats"
	"github.com/2beens/fittrack/internal/fitstats/weights"
)

func newPlank() activities.Activity {
	return activities.Activity{
		Name:                  "plank",
		Type:                  activities.ActivityTypeStrength,
		Sets:                  3,
		RepetitionsOrDuration: 60,
		Unit:                  activities.UnitSeconds,
	}
}

func (s *IntegrationTestSuite) TestActivityLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, token := s.registerAndLogin(ctx)

	resp := s.do(ctx, http.MethodPost, "/activities", token, newPlank())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created activities.Activity
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "plank", created.Name)

	resp = s.do(ctx, http.MethodGet, "/activities", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list activities.ListResponse
	decodeBody(t, resp, &list)
	require.Len(t, list.Activities, 1)
	assert.False(t, list.Activities[0].CompletedToday)

	done := true
	resp = s.do(ctx, http.MethodPost, "/activities/"+created.ID+"/complete", token, activities.CompletionRequest{Completed: &done})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var completion activities.CompletionResponse
	decodeBody(t, resp, &completion)
	assert.True(t, completion.Completed)

	// marking it done twice keeps a single completion
	resp = s.do(ctx, http.MethodPost, "/activities/"+created.ID+"/complete", token, activities.CompletionRequest{Completed: &done})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodGet, "/activities/"+created.ID+"/complete", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &completion)
	assert.True(t, completion.Completed)

	resp = s.do(ctx, http.MethodGet, "/activities", token, nil)
	decodeBody(t, resp, &list)
	require.Len(t, list.Activities, 1)
	assert.True(t, list.Activities[0].CompletedToday)

	undone := false
	resp = s.do(ctx, http.MethodPost, "/activities/"+created.ID+"/complete", token, activities.CompletionRequest{Completed: &undone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &completion)
	assert.False(t, completion.Completed)

	update := newPlank()
	update.Sets = 5
	resp = s.do(ctx, http.MethodPut, "/activities/"+created.ID, token, update)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated activities.Activity
	decodeBody(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 5, updated.Sets)

	invalid := newPlank()
	invalid.Sets = 0
	resp = s.do(ctx, http.MethodPut, "/activities/"+created.ID, token, invalid)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodDelete, "/activities/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted activities.DeleteActivityResponse
	decodeBody(t, resp, &deleted)
	assert.Equal(t, created.ID, deleted.DeletedID)

	resp = s.do(ctx, http.MethodGet, "/activities/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *IntegrationTestSuite) TestActivitiesAreScopedToOwner() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, ownerToken := s.registerAndLogin(ctx)
	_, otherToken := s.registerAndLogin(ctx)

	resp := s.do(ctx, http.MethodPost, "/activities", ownerToken, newPlank())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created activities.Activity
	decodeBody(t, resp, &created)

	resp = s.do(ctx, http.MethodGet, "/activities/"+created.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	done := true
	resp = s.do(ctx, http.MethodPost, "/activities/"+created.ID+"/complete", otherToken, activities.CompletionRequest{Completed: &done})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodGet, "/activities", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list activities.ListResponse
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Activities)
}

func (s *IntegrationTestSuite) TestWeightsAndStats() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, token := s.registerAndLogin(ctx)

	resp := s.do(ctx, http.MethodGet, "/weights/today", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	start, current := 82.0, 80.5
	threeDaysAgo := time.Now().UTC().AddDate(0, 0, -3)
	resp = s.do(ctx, http.MethodPost, "/weights", token, weights.AddEntryRequest{Weight: &start, RecordedAt: &threeDaysAgo})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = s.do(ctx, http.MethodPost, "/weights", token, weights.AddEntryRequest{Weight: &current})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	negative := -1.0
	resp = s.do(ctx, http.MethodPost, "/weights", token, weights.AddEntryRequest{Weight: &negative})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodGet, "/weights/today", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var today weights.Entry
	decodeBody(t, resp, &today)
	assert.Equal(t, current, today.Weight)

	resp = s.do(ctx, http.MethodPost, "/activities", token, newPlank())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created activities.Activity
	decodeBody(t, resp, &created)

	done := true
	resp = s.do(ctx, http.MethodPost, "/activities/"+created.ID+"/complete", token, activities.CompletionRequest{Completed: &done})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(ctx, http.MethodGet, "/stats?days=7", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var response stats.Response
	decodeBody(t, resp, &response)

	require.Len(t, response.ActivityData, 7)
	todayUTC := fitstats.DayOf(time.Now(), time.UTC)
	last := response.ActivityData[len(response.ActivityData)-1]
	assert.Equal(t, todayUTC, last.Date)
	assert.Equal(t, 1, last.Completed)
	assert.Equal(t, 1, last.Total)
	assert.Len(t, response.CalendarData, 7)

	assert.Equal(t, 1, response.Stats.TotalActivities)
	assert.Equal(t, 1, response.Stats.TotalWorkouts)
	assert.Equal(t, 14, response.Stats.CompletionRate)
	assert.Equal(t, stats.RateStatusDataPresent, response.Stats.CompletionRateStatus)

	require.NotNil(t, response.Stats.CurrentWeight)
	require.NotNil(t, response.Stats.StartWeight)
	require.NotNil(t, response.Stats.WeightChange)
	assert.Equal(t, current, *response.Stats.CurrentWeight)
	assert.Equal(t, start, *response.Stats.StartWeight)
	assert.Equal(t, -1.5, *response.Stats.WeightChange)
	assert.Len(t, response.WeightData, 2)
}
