package activities_test

import (
	"context"
	"sort"
	"sync"

	"github.com/2beens/fittrack/internal/fitstats"
	"github.com/2beens/fittrack/internal/fitstats/activities"
)

// memoryRepo keeps activities and completions in maps, mirroring the owner
// scoping and conflict handling of the postgres repo.
type memoryRepo struct {
	mutex       sync.Mutex
	activities  map[string]activities.Activity
	completions map[string]map[fitstats.Day]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		activities:  map[string]activities.Activity{},
		completions: map[string]map[fitstats.Day]bool{},
	}
}

func (r *memoryRepo) completionsCount(activityID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.completions[activityID])
}

func (r *memoryRepo) owned(ownerID, id string) bool {
	a, ok := r.activities[id]
	return ok && a.OwnerID == ownerID
}

func (r *memoryRepo) AddActivity(_ context.Context, activity activities.Activity) (*activities.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.activities[activity.ID] = activity
	return &activity, nil
}

func (r *memoryRepo) UpdateActivity(_ context.Context, activity *activities.Activity) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	existing, ok := r.activities[activity.ID]
	if !ok || existing.OwnerID != activity.OwnerID {
		return activities.ErrActivityNotFound
	}
	activity.CreatedAt = existing.CreatedAt
	r.activities[activity.ID] = *activity
	return nil
}

func (r *memoryRepo) DeleteActivity(_ context.Context, ownerID, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.owned(ownerID, id) {
		return activities.ErrActivityNotFound
	}
	delete(r.activities, id)
	delete(r.completions, id)
	return nil
}

func (r *memoryRepo) GetActivity(_ context.Context, ownerID, id string) (*activities.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.owned(ownerID, id) {
		return nil, activities.ErrActivityNotFound
	}
	a := r.activities[id]
	return &a, nil
}

func (r *memoryRepo) ListActivities(_ context.Context, ownerID string) ([]activities.Activity, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var list []activities.Activity
	for _, a := range r.activities {
		if a.OwnerID == ownerID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (r *memoryRepo) ListCompletions(_ context.Context, ownerID string, from, to fitstats.Day) ([]activities.Completion, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	window := fitstats.Window{From: from, To: to}
	var list []activities.Completion
	for activityID, days := range r.completions {
		if !r.owned(ownerID, activityID) {
			continue
		}
		for day := range days {
			if window.Contains(day) {
				list = append(list, activities.Completion{ActivityID: activityID, Day: day})
			}
		}
	}
	return list, nil
}

func (r *memoryRepo) CompletionExists(_ context.Context, ownerID, activityID string, day fitstats.Day) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.owned(ownerID, activityID) {
		return false, nil
	}
	return r.completions[activityID][day], nil
}

func (r *memoryRepo) UpsertCompletion(_ context.Context, ownerID, activityID string, day fitstats.Day) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.owned(ownerID, activityID) {
		return nil
	}
	if r.completions[activityID] == nil {
		r.completions[activityID] = map[fitstats.Day]bool{}
	}
	r.completions[activityID][day] = true
	return nil
}

func (r *memoryRepo) DeleteCompletion(_ context.Context, ownerID, activityID string, day fitstats.Day) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if !r.owned(ownerID, activityID) {
		return nil
	}
	delete(r.completions[activityID], day)
	return nil
}
