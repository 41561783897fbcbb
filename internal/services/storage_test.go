package services

import (
	"context"
	"encoding/json"
	"testing"

	"deptevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageManager_InitializeDepartments_Seeds(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(newFlakyKV())

	require.NoError(t, s.InitializeDepartments(ctx))

	cs := s.GetDepartmentEvents(ctx, "CS")
	require.Len(t, cs, 3)
	assert.Equal(t, []int{1, 2, 3}, eventIDs(cs))
	assert.Equal(t, "TechFest 2025", cs[0].Title)
	assert.Equal(t, "2025-11-15", cs[0].Date)
	assert.Equal(t, "10:00 AM", cs[0].Time)
	assert.Equal(t, "Auditorium A", cs[0].Venue)
	assert.Nil(t, cs[0].Image)
	assert.Nil(t, cs[0].Video)
	assert.Equal(t, fixedNow, cs[0].CreatedAt)

	assert.Equal(t, []int{101, 102}, eventIDs(s.GetDepartmentEvents(ctx, "EE")))
	assert.Equal(t, []int{201}, eventIDs(s.GetDepartmentEvents(ctx, "ME")))
	assert.Equal(t, []int{301}, eventIDs(s.GetDepartmentEvents(ctx, "CIVIL")))
	assert.Equal(t, []int{401}, eventIDs(s.GetDepartmentEvents(ctx, "ECE")))
}

func TestStorageManager_InitializeDepartments_NeverReseeds(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		existing string
	}{
		{"empty object", `{}`},
		{"corrupt", `{not json`},
		{"user data", `{"CS":[{"id":9,"title":"Mine"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFlakyKV()
			require.NoError(t, kv.Set(ctx, DepartmentsKey, []byte(tt.existing)))
			s := newTestStorage(kv)

			require.NoError(t, s.InitializeDepartments(ctx))

			raw, err := kv.Get(ctx, DepartmentsKey)
			require.NoError(t, err)
			assert.Equal(t, tt.existing, string(raw))
		})
	}
}

func TestStorageManager_InitializeDepartments_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(newFlakyKV())
	require.NoError(t, s.InitializeDepartments(ctx))
	require.NoError(t, s.SaveEvent(ctx, "CS", &domain.Event{ID: 4, Title: "Extra"}))
	require.NoError(t, s.InitializeDepartments(ctx))
	assert.Len(t, s.GetDepartmentEvents(ctx, "CS"), 4)
}

func TestStorageManager_InitializeDepartments_BackendError(t *testing.T) {
	kv := newFlakyKV()
	kv.failGet = errBackend
	s := newTestStorage(kv)
	require.ErrorIs(t, s.InitializeDepartments(context.Background()), errBackend)
}

func TestStorageManager_GetDepartmentEvents_NeverFails(t *testing.T) {
	ctx := context.Background()

	kv := newFlakyKV()
	s := newTestStorage(kv)
	assert.Empty(t, s.GetDepartmentEvents(ctx, "CS"), "missing record")

	require.NoError(t, kv.Set(ctx, DepartmentsKey, []byte("][")))
	got := s.GetDepartmentEvents(ctx, "CS")
	assert.NotNil(t, got)
	assert.Empty(t, got, "corrupt record")

	require.NoError(t, kv.Set(ctx, DepartmentsKey, []byte(`null`)))
	assert.Empty(t, s.GetDepartmentEvents(ctx, "CS"), "null record")

	kv.failGet = errBackend
	assert.Empty(t, s.GetDepartmentEvents(ctx, "CS"), "backend error")
}

func TestStorageManager_SaveEvent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(newFlakyKV())

	// Creates the department list when absent.
	require.NoError(t, s.SaveEvent(ctx, "ME", &domain.Event{ID: 1, Title: "A"}))
	// No duplicate-id check.
	require.NoError(t, s.SaveEvent(ctx, "ME", &domain.Event{ID: 1, Title: "B"}))

	got := s.GetDepartmentEvents(ctx, "ME")
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
	assert.Empty(t, s.GetDepartmentEvents(ctx, "EE"))
}

func TestStorageManager_SaveEvent_WriteError(t *testing.T) {
	kv := newFlakyKV()
	kv.failSet = errBackend
	s := newTestStorage(kv)
	err := s.SaveEvent(context.Background(), "CS", &domain.Event{ID: 1})
	require.ErrorIs(t, err, errBackend)
}

func TestStorageManager_WritesAbortOnReadError(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		write func(s *storageManager) error
	}{
		{"save", func(s *storageManager) error {
			return s.SaveEvent(ctx, "CS", &domain.Event{ID: 4, Title: "Extra"})
		}},
		{"update", func(s *storageManager) error {
			title := "Renamed"
			_, err := s.UpdateEvent(ctx, "CS", 1, domain.EventPatch{Title: &title})
			return err
		}},
		{"delete", func(s *storageManager) error {
			_, err := s.DeleteEvent(ctx, "CS", 1)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newFlakyKV()
			s := newTestStorage(kv)
			require.NoError(t, s.InitializeDepartments(ctx))
			before, err := kv.Get(ctx, DepartmentsKey)
			require.NoError(t, err)

			kv.failGetOnce = errBackend
			require.ErrorIs(t, tt.write(s), errBackend)

			after, err := kv.Get(ctx, DepartmentsKey)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
			assert.Equal(t, []int{1, 2, 3}, eventIDs(s.GetDepartmentEvents(ctx, "CS")))
			assert.Equal(t, []int{101, 102}, eventIDs(s.GetDepartmentEvents(ctx, "EE")))
			assert.Equal(t, []int{201}, eventIDs(s.GetDepartmentEvents(ctx, "ME")))
		})
	}
}

func TestStorageManager_WritesTreatCorruptRecordAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	require.NoError(t, kv.Set(ctx, DepartmentsKey, []byte(`{not json`)))
	s := newTestStorage(kv)

	require.NoError(t, s.SaveEvent(ctx, "CS", &domain.Event{ID: 1, Title: "Fresh"}))
	assert.Equal(t, []int{1}, eventIDs(s.GetDepartmentEvents(ctx, "CS")))
}

func TestStorageManager_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(newFlakyKV())
	require.NoError(t, s.InitializeDepartments(ctx))

	title := "TechFest 2026"
	img := "data:image/png;base64,AAAA"
	ok, err := s.UpdateEvent(ctx, "CS", 1, domain.EventPatch{Title: &title, Image: &img})
	require.NoError(t, err)
	assert.True(t, ok)

	got := s.GetDepartmentEvents(ctx, "CS")[0]
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "TechFest 2026", got.Title)
	assert.Equal(t, "Auditorium A", got.Venue, "absent fields retained")
	assert.Equal(t, fixedNow, got.CreatedAt)
	require.NotNil(t, got.Image)
	assert.Equal(t, img, *got.Image)
	assert.Nil(t, got.Video)

	ok, err = s.UpdateEvent(ctx, "CS", 999, domain.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok, "unknown id")

	ok, err = s.UpdateEvent(ctx, "MATH", 1, domain.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok, "unknown department")
}

func TestStorageManager_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(newFlakyKV())
	require.NoError(t, s.InitializeDepartments(ctx))

	ok, err := s.DeleteEvent(ctx, "CS", 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 3}, eventIDs(s.GetDepartmentEvents(ctx, "CS")), "relative order preserved")

	ok, err = s.DeleteEvent(ctx, "CS", 999)
	require.NoError(t, err)
	assert.True(t, ok, "department exists even when no event matched")
	assert.Len(t, s.GetDepartmentEvents(ctx, "CS"), 2)

	ok, err = s.DeleteEvent(ctx, "MATH", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorageManager_Session(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := newTestStorage(kv)

	assert.Nil(t, s.GetSession(ctx))

	session, err := s.SetSession(ctx, "CIVIL")
	require.NoError(t, err)
	assert.Equal(t, "Civil Engineering", session.DepartmentName)

	got := s.GetSession(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "CIVIL", got.Department)
	assert.Equal(t, "Civil Engineering", got.DepartmentName)
	assert.True(t, fixedNow.Equal(got.LoginTime))

	raw, err := kv.Get(ctx, SessionKey)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.ElementsMatch(t, []string{"department", "departmentName", "loginTime"}, keys(wire))

	// Overwrites unconditionally; unknown codes keep the raw code as name.
	_, err = s.SetSession(ctx, "MATH")
	require.NoError(t, err)
	assert.Equal(t, "MATH", s.GetSession(ctx).DepartmentName)

	require.NoError(t, s.ClearSession(ctx))
	assert.Nil(t, s.GetSession(ctx))
	require.NoError(t, s.ClearSession(ctx))
}

func TestStorageManager_GetSession_Corrupt(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	require.NoError(t, kv.Set(ctx, SessionKey, []byte("nope")))
	assert.Nil(t, newTestStorage(kv).GetSession(ctx))
}

func TestStorageManager_EventJSONShape(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := newTestStorage(kv)
	require.NoError(t, s.SaveEvent(ctx, "CS", &domain.Event{ID: 1, Title: "T", CreatedAt: fixedNow}))

	raw, err := kv.Get(ctx, DepartmentsKey)
	require.NoError(t, err)
	var wire map[string][]map[string]any
	require.NoError(t, json.Unmarshal(raw, &wire))
	require.Len(t, wire["CS"], 1)
	ev := wire["CS"][0]
	assert.ElementsMatch(t, []string{"id", "title", "description", "date", "time", "venue", "image", "video", "createdAt"}, keys(ev))
	assert.Nil(t, ev["image"])
	assert.Nil(t, ev["video"])
}

func eventIDs(events []domain.Event) []int {
	out := make([]int, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
