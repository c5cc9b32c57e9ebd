package service

import (
	"context"
	"errors"
	"time"

	"github.com/jose-valero/clan-afk-bot/internal/infra/storage"
)

// Errores de validación: se reportan al usuario como pedido rechazado, nunca
// se reintentan y nunca llegan a persistir nada.
var (
	ErrInvalidRange = errors.New("el fin debe ser posterior al inicio")
	ErrPastEnd      = errors.New("el fin ya pasó")
	ErrPastStart    = errors.New("el inicio está en el pasado")
	ErrInvalidDays  = errors.New("la cantidad de días debe ser un entero positivo")
)

// Status es la clasificación temporal derivada al consultar. Nunca se persiste:
// volver a consultar más tarde puede cambiarla sin que haya ninguna escritura.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusScheduled Status = "SCHEDULED"
	StatusExpired   Status = "EXPIRED"
)

// AfkView es un registro crudo anotado con su estado derivado.
type AfkView struct {
	storage.AfkInterval
	Status Status
}

type AFKService struct {
	store AFKStore
	loc   *time.Location
	nowFn func() time.Time // inyectable en tests
}

func NewAFKService(store AFKStore, loc *time.Location) *AFKService {
	return &AFKService{store: store, loc: loc, nowFn: time.Now}
}

// Now: instante civil actual, truncado a segundos (la tabla no guarda fracciones).
func (s *AFKService) Now() time.Time {
	return s.nowFn().In(s.loc).Truncate(time.Second)
}

// SetAfk valida y registra una ausencia; el registro activo previo del usuario
// (si lo hay) queda cerrado en la misma operación.
func (s *AFKService) SetAfk(ctx context.Context, userID int64, displayName string, start, end time.Time, reason string, groupID int64) (storage.AfkInterval, error) {
	return s.SetAfkAt(ctx, userID, displayName, start, end, reason, groupID, s.Now())
}

// SetAfkAt es SetAfk con el instante de referencia explícito. Quien quiera
// "desde ya" debe pasar exactamente now como inicio, no un instante pasado.
func (s *AFKService) SetAfkAt(ctx context.Context, userID int64, displayName string, start, end time.Time, reason string, groupID int64, now time.Time) (storage.AfkInterval, error) {
	// toda la validación semántica vive acá; el store confía en su caller
	if !end.After(start) {
		return storage.AfkInterval{}, ErrInvalidRange
	}
	if !end.After(now) {
		return storage.AfkInterval{}, ErrPastEnd
	}
	if start.Before(now) {
		return storage.AfkInterval{}, ErrPastStart
	}
	return s.store.Create(ctx, storage.AfkInterval{
		UserID:      userID,
		DisplayName: displayName,
		StartTime:   start,
		EndTime:     end,
		Reason:      reason,
		GroupID:     groupID,
	}, now)
}

// SetAfkQuick registra "AFK desde ya": ventana calculada con un único now para
// no tropezar con la validación de inicio pasado.
func (s *AFKService) SetAfkQuick(ctx context.Context, userID int64, displayName string, days *int, reason string, groupID int64) (storage.AfkInterval, error) {
	now := s.Now()
	start, end, err := QuickWindow(now, days)
	if err != nil {
		return storage.AfkInterval{}, err
	}
	return s.SetAfkAt(ctx, userID, displayName, start, end, reason, groupID, now)
}

// EndAfk cierra la ausencia activa. false significa "no había nada que cerrar",
// que es un resultado vacío normal, no un error.
func (s *AFKService) EndAfk(ctx context.Context, userID int64) (bool, error) {
	return s.store.Deactivate(ctx, userID, s.Now())
}

// DeriveStatus clasifica un intervalo en el instante dado. Función pura de los
// dos timestamps y el instante de consulta.
func DeriveStatus(start, end, now time.Time) Status {
	switch {
	case end.Before(now):
		return StatusExpired
	case start.After(now):
		return StatusScheduled
	default:
		return StatusActive
	}
}

func (s *AFKService) ListForGroup(ctx context.Context, groupID int64, now time.Time) ([]AfkView, error) {
	items, err := s.store.ListActive(ctx, &groupID, now)
	if err != nil {
		return nil, err
	}
	return annotate(items, now), nil
}

func (s *AFKService) ListForUser(ctx context.Context, userID int64, now time.Time) ([]AfkView, error) {
	items, err := s.store.ListUserCurrentAndFuture(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return annotate(items, now), nil
}

func (s *AFKService) History(ctx context.Context, userID int64, limit int) ([]storage.AfkInterval, error) {
	return s.store.History(ctx, userID, limit)
}

func (s *AFKService) Stats(ctx context.Context, groupID *int64, now time.Time) (storage.AfkStats, error) {
	return s.store.Stats(ctx, groupID, now)
}

func (s *AFKService) Purge(ctx context.Context, userID int64, all bool) (int64, error) {
	return s.store.Purge(ctx, userID, all)
}

// annotate conserva el orden que devolvió el store.
func annotate(items []storage.AfkInterval, now time.Time) []AfkView {
	out := make([]AfkView, 0, len(items))
	for _, it := range items {
		out = append(out, AfkView{AfkInterval: it, Status: DeriveStatus(it.StartTime, it.EndTime, now)})
	}
	return out
}

// QuickWindow: inicio = now; fin = 23:59:59 del mismo día, o del día que
// resulta de sumar days (si se indica, debe ser >= 1).
func QuickWindow(now time.Time, days *int) (time.Time, time.Time, error) {
	d := 0
	if days != nil {
		if *days < 1 {
			return time.Time{}, time.Time{}, ErrInvalidDays
		}
		d = *days
	}
	day := now.AddDate(0, 0, d)
	end := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, now.Location())
	return now, end, nil
}
