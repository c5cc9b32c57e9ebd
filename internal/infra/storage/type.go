package storage

import "time"

// Los instantes se guardan como texto naive "YYYY-MM-DD HH:MM:SS" en la
// convención civil del bot (UTC+1 por defecto). Ese formato ordena
// lexicográficamente igual que cronológicamente, así que los filtros
// comparan texto directo en SQL.
const timeLayout = "2006-01-02 15:04:05"

// AfkInterval es una fila de afk_intervals. Inmutable tras el insert,
// salvo la transición única (is_active=1, ended_at=NULL) → (0, instante).
type AfkInterval struct {
	ID          int64
	UserID      int64
	DisplayName string // snapshot al crear, no se resincroniza
	StartTime   time.Time
	EndTime     time.Time
	Reason      string
	GroupID     int64
	CreatedAt   time.Time
	EndedAt     *time.Time // NULL mientras el registro sigue activo
	IsActive    bool
}

// AfkStats agrega los contadores de /afk stats.
type AfkStats struct {
	Total           int64
	UniqueUsers     int64
	ActiveNow       int64   // is_active y start <= now < end
	ScheduledFuture int64   // is_active y start > now
	AvgDurationDays float64 // duración realizada promedio, en días fraccionales
}
