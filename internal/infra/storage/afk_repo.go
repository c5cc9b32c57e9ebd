package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const defaultHistoryLimit = 5

const afkCols = `id, user_id, display_name, start_time, end_time, reason, group_id, created_at, ended_at, is_active`

type AFKRepo struct {
	db  *sql.DB
	loc *time.Location
}

func NewAFKRepo(db *sql.DB, loc *time.Location) *AFKRepo {
	return &AFKRepo{db: db, loc: loc}
}

func (r *AFKRepo) fmt(t time.Time) string { return t.Format(timeLayout) }

func (r *AFKRepo) parse(s string) (time.Time, error) {
	return time.ParseInLocation(timeLayout, s, r.loc)
}

// Create cierra el registro activo previo del usuario (si existe) e inserta el
// nuevo en una única transacción: así dos llamadas concurrentes no pueden dejar
// dos filas activas para el mismo usuario. No valida el orden temporal: eso es
// responsabilidad del servicio que llama.
func (r *AFKRepo) Create(ctx context.Context, e AfkInterval, now time.Time) (AfkInterval, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return AfkInterval{}, fmt.Errorf("afk create: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
UPDATE afk_intervals
   SET is_active = 0, ended_at = ?
 WHERE user_id = ? AND is_active = 1
`, r.fmt(now), e.UserID); err != nil {
		return AfkInterval{}, fmt.Errorf("afk create: supersede: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO afk_intervals (user_id, display_name, start_time, end_time, reason, group_id, created_at, ended_at, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, NULL, 1)
`, e.UserID, e.DisplayName, r.fmt(e.StartTime), r.fmt(e.EndTime), e.Reason, e.GroupID, r.fmt(now))
	if err != nil {
		return AfkInterval{}, fmt.Errorf("afk create: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return AfkInterval{}, fmt.Errorf("afk create: last id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return AfkInterval{}, fmt.Errorf("afk create: commit: %w", err)
	}

	e.ID = id
	e.StartTime = e.StartTime.Truncate(time.Second)
	e.EndTime = e.EndTime.Truncate(time.Second)
	e.CreatedAt = now.Truncate(time.Second)
	e.EndedAt = nil
	e.IsActive = true
	return e, nil
}

// Deactivate marca el registro activo del usuario como terminado. Idempotente:
// si no había registro activo devuelve false.
func (r *AFKRepo) Deactivate(ctx context.Context, userID int64, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE afk_intervals
   SET is_active = 0, ended_at = ?
 WHERE user_id = ? AND is_active = 1
`, r.fmt(now), userID)
	if err != nil {
		return false, fmt.Errorf("afk deactivate: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListActive devuelve los registros activos (de un grupo, si se indica) que
// todavía son visibles: los ya vencidos pero no desactivados quedan ocultos
// aunque sigan en la tabla hasta un deactivate o purge.
func (r *AFKRepo) ListActive(ctx context.Context, groupID *int64, now time.Time) ([]AfkInterval, error) {
	n := r.fmt(now)
	q := `
SELECT ` + afkCols + `
  FROM afk_intervals
 WHERE is_active = 1
   AND (end_time >= ? OR start_time > ?)`
	args := []any{n, n}
	if groupID != nil {
		q += `
   AND group_id = ?`
		args = append(args, *groupID)
	}
	q += `
 ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("afk list: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListUserCurrentAndFuture: registros activos del usuario que aún no vencieron.
func (r *AFKRepo) ListUserCurrentAndFuture(ctx context.Context, userID int64, now time.Time) ([]AfkInterval, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+afkCols+`
  FROM afk_intervals
 WHERE is_active = 1
   AND user_id = ?
   AND end_time >= ?
 ORDER BY start_time ASC
`, userID, r.fmt(now))
	if err != nil {
		return nil, fmt.Errorf("afk list user: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// History: todos los registros del usuario, los más recientes primero.
func (r *AFKRepo) History(ctx context.Context, userID int64, limit int) ([]AfkInterval, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+afkCols+`
  FROM afk_intervals
 WHERE user_id = ?
 ORDER BY created_at DESC, id DESC
 LIMIT ?
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("afk history: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// Stats agrega contadores y la duración realizada promedio. Un registro cuenta
// para el promedio si terminó antes (ended_at) o si su end_time ya pasó; la
// duración realizada es min(ended_at, end_time) − start_time.
func (r *AFKRepo) Stats(ctx context.Context, groupID *int64, now time.Time) (AfkStats, error) {
	n := r.fmt(now)
	q := `
SELECT COUNT(*),
       COUNT(DISTINCT user_id),
       COALESCE(SUM(CASE WHEN is_active = 1 AND start_time <= ? AND ? < end_time THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN is_active = 1 AND start_time > ? THEN 1 ELSE 0 END), 0),
       AVG(CASE WHEN ended_at IS NOT NULL OR end_time < ?
                THEN julianday(MIN(COALESCE(ended_at, end_time), end_time)) - julianday(start_time)
           END)
  FROM afk_intervals`
	args := []any{n, n, n, n}
	if groupID != nil {
		q += `
 WHERE group_id = ?`
		args = append(args, *groupID)
	}

	var st AfkStats
	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&st.Total, &st.UniqueUsers, &st.ActiveNow, &st.ScheduledFuture, &avg,
	); err != nil {
		return AfkStats{}, fmt.Errorf("afk stats: %w", err)
	}
	if avg.Valid {
		st.AvgDurationDays = avg.Float64
	}
	return st, nil
}

// Purge borra definitivamente registros del usuario: sólo los activos, o todo
// el historial con all=true. Devuelve cuántos borró (0 no es error).
func (r *AFKRepo) Purge(ctx context.Context, userID int64, all bool) (int64, error) {
	q := `DELETE FROM afk_intervals WHERE user_id = ?`
	if !all {
		q += ` AND is_active = 1`
	}
	res, err := r.db.ExecContext(ctx, q, userID)
	if err != nil {
		return 0, fmt.Errorf("afk purge: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *AFKRepo) collect(rows *sql.Rows) ([]AfkInterval, error) {
	var out []AfkInterval
	for rows.Next() {
		var (
			e                   AfkInterval
			start, end, created string
			ended               sql.NullString
			active              int64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.DisplayName, &start, &end, &e.Reason,
			&e.GroupID, &created, &ended, &active); err != nil {
			return nil, fmt.Errorf("afk scan: %w", err)
		}
		var err error
		if e.StartTime, err = r.parse(start); err != nil {
			return nil, fmt.Errorf("afk scan start_time: %w", err)
		}
		if e.EndTime, err = r.parse(end); err != nil {
			return nil, fmt.Errorf("afk scan end_time: %w", err)
		}
		if e.CreatedAt, err = r.parse(created); err != nil {
			return nil, fmt.Errorf("afk scan created_at: %w", err)
		}
		if ended.Valid {
			t, err := r.parse(ended.String)
			if err != nil {
				return nil, fmt.Errorf("afk scan ended_at: %w", err)
			}
			e.EndedAt = &t
		}
		e.IsActive = active != 0
		out = append(out, e)
	}
	return out, rows.Err()
}
