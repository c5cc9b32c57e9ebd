package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/clan-afk-bot/internal/infra/storage"
)

var testLoc = time.FixedZone("UTC+1", 3600)

// fakeStore implementa AFKStore en memoria con la misma semántica de
// supersede que el repo real.
type fakeStore struct {
	nextID    int64
	rows      []storage.AfkInterval
	lastLimit int
}

func (f *fakeStore) Create(_ context.Context, e storage.AfkInterval, now time.Time) (storage.AfkInterval, error) {
	for i := range f.rows {
		if f.rows[i].UserID == e.UserID && f.rows[i].IsActive {
			t := now
			f.rows[i].IsActive = false
			f.rows[i].EndedAt = &t
		}
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = now
	e.IsActive = true
	e.EndedAt = nil
	f.rows = append(f.rows, e)
	return e, nil
}

func (f *fakeStore) Deactivate(_ context.Context, userID int64, now time.Time) (bool, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].IsActive {
			t := now
			f.rows[i].IsActive = false
			f.rows[i].EndedAt = &t
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListActive(_ context.Context, groupID *int64, now time.Time) ([]storage.AfkInterval, error) {
	var out []storage.AfkInterval
	for _, r := range f.rows {
		if !r.IsActive {
			continue
		}
		if groupID != nil && r.GroupID != *groupID {
			continue
		}
		if r.EndTime.Before(now) && !r.StartTime.After(now) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeStore) ListUserCurrentAndFuture(_ context.Context, userID int64, now time.Time) ([]storage.AfkInterval, error) {
	var out []storage.AfkInterval
	for _, r := range f.rows {
		if r.IsActive && r.UserID == userID && !r.EndTime.Before(now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeStore) History(_ context.Context, userID int64, limit int) ([]storage.AfkInterval, error) {
	f.lastLimit = limit
	var out []storage.AfkInterval
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) Stats(_ context.Context, groupID *int64, now time.Time) (storage.AfkStats, error) {
	var st storage.AfkStats
	users := map[int64]struct{}{}
	for _, r := range f.rows {
		if groupID != nil && r.GroupID != *groupID {
			continue
		}
		st.Total++
		users[r.UserID] = struct{}{}
		if r.IsActive && !r.StartTime.After(now) && now.Before(r.EndTime) {
			st.ActiveNow++
		}
		if r.IsActive && r.StartTime.After(now) {
			st.ScheduledFuture++
		}
	}
	st.UniqueUsers = int64(len(users))
	return st, nil
}

func (f *fakeStore) Purge(_ context.Context, userID int64, all bool) (int64, error) {
	var kept []storage.AfkInterval
	var n int64
	for _, r := range f.rows {
		if r.UserID == userID && (all || r.IsActive) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return n, nil
}

func (f *fakeStore) activeCount(userID int64) int {
	n := 0
	for _, r := range f.rows {
		if r.UserID == userID && r.IsActive {
			n++
		}
	}
	return n
}

func newTestService(now time.Time) (*AFKService, *fakeStore) {
	fs := &fakeStore{}
	svc := NewAFKService(fs, testLoc)
	svc.nowFn = func() time.Time { return now }
	return svc, fs
}

func TestSetAfkValidation(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, fs := newTestService(now)
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"fin igual al inicio", now.Add(time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"fin antes del inicio", now.Add(2 * time.Hour), now.Add(time.Hour), ErrInvalidRange},
		{"fin en el pasado", now.Add(-2 * time.Hour), now.Add(-time.Hour), ErrPastEnd},
		{"fin igual a now", now.Add(-time.Hour), now, ErrPastEnd},
		{"inicio en el pasado", now.Add(-time.Minute), now.Add(time.Hour), ErrPastStart},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetAfk(ctx, 1, "Nyra", tc.start, tc.end, "", 1)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, fs.rows, "una validación fallida nunca persiste nada")
		})
	}

	// inicio exactamente en now es válido
	_, err := svc.SetAfk(ctx, 1, "Nyra", now, now.Add(time.Hour), "", 1)
	require.NoError(t, err)
}

func TestSetAfkKeepsSingleActive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, fs := newTestService(now)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		start := now.Add(time.Duration(i) * time.Hour)
		_, err := svc.SetAfk(ctx, 1, "Nyra", start, start.Add(24*time.Hour), "", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, fs.activeCount(1))
	}
	assert.Len(t, fs.rows, 4)
}

func TestEndAfkTwice(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, _ := newTestService(now)
	ctx := context.Background()

	_, err := svc.SetAfk(ctx, 1, "Nyra", now, now.Add(time.Hour), "", 1)
	require.NoError(t, err)

	ended, err := svc.EndAfk(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ended)

	ended, err = svc.EndAfk(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ended, "sin registro activo no hay nada que cerrar")
}

func TestDeriveStatusSweep(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	end := start.Add(48 * time.Hour)

	// barrido de now: una sola secuencia SCHEDULED → ACTIVE → EXPIRED
	var seq []Status
	for now := start.Add(-time.Hour); now.Before(end.Add(2 * time.Hour)); now = now.Add(10 * time.Minute) {
		st := DeriveStatus(start, end, now)
		if len(seq) == 0 || seq[len(seq)-1] != st {
			seq = append(seq, st)
		}
	}
	assert.Equal(t, []Status{StatusScheduled, StatusActive, StatusExpired}, seq)

	// bordes exactos
	assert.Equal(t, StatusActive, DeriveStatus(start, end, start), "start == now ya es ACTIVE")
	assert.Equal(t, StatusActive, DeriveStatus(start, end, end), "EXPIRED recién cuando end < now")
	assert.Equal(t, StatusExpired, DeriveStatus(start, end, end.Add(time.Second)))
}

func TestListForGroupAnnotates(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, _ := newTestService(now)
	ctx := context.Background()

	_, err := svc.SetAfk(ctx, 1, "A", now, now.Add(48*time.Hour), "", 1)
	require.NoError(t, err)
	_, err = svc.SetAfk(ctx, 2, "B", now.Add(72*time.Hour), now.Add(96*time.Hour), "", 1)
	require.NoError(t, err)
	_, err = svc.SetAfk(ctx, 3, "C", now, now.Add(48*time.Hour), "", 2)
	require.NoError(t, err)

	views, err := svc.ListForGroup(ctx, 1, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "A", views[0].DisplayName)
	assert.Equal(t, StatusActive, views[0].Status)
	assert.Equal(t, "B", views[1].DisplayName)
	assert.Equal(t, StatusScheduled, views[1].Status)

	// A vencido y sin supersede: fuera del listado, sin escritura alguna
	views, err = svc.ListForGroup(ctx, 1, now.Add(72*time.Hour))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "B", views[0].DisplayName)
}

func TestStatsPassThrough(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, _ := newTestService(now)
	ctx := context.Background()

	_, err := svc.SetAfk(ctx, 1, "A", now, now.Add(48*time.Hour), "", 1)
	require.NoError(t, err)
	_, err = svc.SetAfk(ctx, 2, "B", now.Add(72*time.Hour), now.Add(96*time.Hour), "", 1)
	require.NoError(t, err)

	g1 := int64(1)
	st, err := svc.Stats(ctx, &g1, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Total)
	assert.Equal(t, int64(2), st.UniqueUsers)
	assert.Equal(t, int64(1), st.ActiveNow)
	assert.Equal(t, int64(1), st.ScheduledFuture)
}

func TestQuickWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, testLoc)

	start, end, err := QuickWindow(now, nil)
	require.NoError(t, err)
	assert.True(t, start.Equal(now))
	assert.True(t, end.Equal(time.Date(2025, 3, 10, 23, 59, 59, 0, testLoc)))

	three := 3
	_, end, err = QuickWindow(now, &three)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 3, 13, 23, 59, 59, 0, testLoc)))

	// cruce de mes
	eom := time.Date(2025, 1, 31, 9, 0, 0, 0, testLoc)
	one := 1
	_, end, err = QuickWindow(eom, &one)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2025, 2, 1, 23, 59, 59, 0, testLoc)))

	for _, bad := range []int{0, -2} {
		b := bad
		_, _, err = QuickWindow(now, &b)
		assert.ErrorIs(t, err, ErrInvalidDays)
	}
}

func TestSetAfkQuick(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, testLoc)
	svc, fs := newTestService(now)
	ctx := context.Background()

	rec, err := svc.SetAfkQuick(ctx, 1, "Nyra", nil, "raid", 1)
	require.NoError(t, err)
	assert.True(t, rec.StartTime.Equal(now))
	assert.True(t, rec.EndTime.Equal(time.Date(2025, 3, 10, 23, 59, 59, 0, testLoc)))
	assert.Equal(t, 1, fs.activeCount(1))
}

func TestSetAfkQuickAtDayBoundary(t *testing.T) {
	// exactamente 23:59:59: la ventana termina en now y la validación la rechaza
	boundary := time.Date(2025, 3, 10, 23, 59, 59, 0, testLoc)
	svc, fs := newTestService(boundary)

	_, err := svc.SetAfkQuick(context.Background(), 1, "Nyra", nil, "", 1)
	assert.ErrorIs(t, err, ErrPastEnd)
	assert.Empty(t, fs.rows)

	// un segundo antes todavía entra
	svc2, _ := newTestService(boundary.Add(-time.Second))
	_, err = svc2.SetAfkQuick(context.Background(), 1, "Nyra", nil, "", 1)
	assert.NoError(t, err)
}

func TestHistoryDefaultLimit(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, testLoc)
	svc, fs := newTestService(now)

	_, err := svc.History(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, fs.lastLimit, "el default del límite vive en el store")
}
