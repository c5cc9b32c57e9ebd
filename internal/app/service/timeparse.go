package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBadInstant = errors.New("fecha/hora no reconocida")

// formatos con año explícito
var fullLayouts = []string{
	"02.01.2006 15:04",
	"2.1.2006 15:04",
	"02.01.2006",
	"2.1.2006",
	"2006-01-02 15:04",
	"2006-01-02",
}

// formatos sin año: se asume el año del instante de consulta, sin rollover
var yearlessLayouts = []string{
	"02.01. 15:04",
	"2.1. 15:04",
	"02.01.",
	"2.1.",
}

// ParseInstant es el único punto de entrada para fechas/horas textuales del
// bot. Fechas sin hora son a medianoche; "18:00" solo es hoy a esa hora.
// Devuelve ErrBadInstant si el texto no coincide con ningún formato.
func ParseInstant(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: vacío", ErrBadInstant)
	}
	loc := now.Location()

	for _, l := range fullLayouts {
		if t, err := time.ParseInLocation(l, text, loc); err == nil {
			return t, nil
		}
	}
	for _, l := range yearlessLayouts {
		if t, err := time.ParseInLocation(l, text, loc); err == nil {
			return time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
		}
	}
	if t, err := time.ParseInLocation("15:04", text, loc); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadInstant, text)
}
