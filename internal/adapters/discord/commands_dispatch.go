// aqui solo manejamos la interaccion del usuario y despachamos a los servicios
package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/clan-afk-bot/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	log.Printf("cmd: %s by=%s guild=%s", cmd.Name, ic.Member.User.ID, ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Ocurrió un error inesperado procesando el comando.")
		}
	}()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	switch cmd.Name {
	case "afk":
		r.handleAfk(ctx, s, ic)
	case "members":
		r.handleMembers(ctx, s, ic)
	case "roles":
		r.handleRoles(s, ic)
	}
}

func (r *Router) handleAfk(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	sub, ok := subcmdName(ic)
	if !ok {
		ReplyEphemeral(s, ic, "Usa `/afk set`, `/afk quick`, `/afk end`, `/afk list`, `/afk me`, `/afk history` o `/afk stats`.")
		return
	}

	userID, err := strconv.ParseInt(ic.Member.User.ID, 10, 64)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude leer tu ID de usuario.")
		return
	}

	switch sub {
	case "set":
		if wait, ok := r.limiter.Allow(ic.Member.User.ID); !ok {
			ReplyEphemeral(s, ic, fmt.Sprintf("⏳ Con calma, probá de nuevo en %ds.", int(wait.Seconds())+1))
			return
		}
		clan, ok := r.clanForRoles(ic.Member.Roles)
		if !ok {
			ReplyEphemeral(s, ic, "⚠️ No perteneces a ningún clan configurado.")
			return
		}

		now := r.afk.Now()
		untilRaw, _ := optStr(ic, "until")
		end, err := service.ParseInstant(untilRaw, now)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No entendí la fecha de fin. Formatos: `16.09.2025 18:00`, `16.09. 18:00`, `18:00`.")
			return
		}
		start := now
		if fromRaw, has := optStr(ic, "from"); has && fromRaw != "" {
			if start, err = service.ParseInstant(fromRaw, now); err != nil {
				ReplyEphemeral(s, ic, "⚠️ No entendí la fecha de inicio.")
				return
			}
		}
		reason, _ := optStr(ic, "reason")

		rec, err := r.afk.SetAfkAt(ctx, userID, memberDisplayName(ic.Member), start, end, reason, clan.GroupID, now)
		if err != nil {
			ReplyEphemeral(s, ic, afkErrorMessage(err))
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ AFK registrado para **%s**: %s → %s.", clan.Name, fmtInstant(rec.StartTime), fmtInstant(rec.EndTime)))

	case "quick":
		if wait, ok := r.limiter.Allow(ic.Member.User.ID); !ok {
			ReplyEphemeral(s, ic, fmt.Sprintf("⏳ Con calma, probá de nuevo en %ds.", int(wait.Seconds())+1))
			return
		}
		clan, ok := r.clanForRoles(ic.Member.Roles)
		if !ok {
			ReplyEphemeral(s, ic, "⚠️ No perteneces a ningún clan configurado.")
			return
		}
		var days *int
		if d, has := optInt(ic, "days"); has {
			days = &d
		}
		reason, _ := optStr(ic, "reason")

		rec, err := r.afk.SetAfkQuick(ctx, userID, memberDisplayName(ic.Member), days, reason, clan.GroupID)
		if err != nil {
			ReplyEphemeral(s, ic, afkErrorMessage(err))
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ AFK desde ya hasta %s.", fmtInstant(rec.EndTime)))

	case "end":
		ended, err := r.afk.EndAfk(ctx, userID)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo cerrar la ausencia: "+err.Error())
			return
		}
		if !ended {
			ReplyEphemeral(s, ic, "ℹ️ No tenías ninguna ausencia activa.")
			return
		}
		ReplyEphemeral(s, ic, "✅ Bienvenido de vuelta, ausencia cerrada.")

	case "list":
		clan, ok := r.clanForRoles(ic.Member.Roles)
		if name, has := optStr(ic, "clan"); has && name != "" {
			clan, ok = r.clanByName(name)
		}
		if !ok {
			ReplyEphemeral(s, ic, "⚠️ Clan desconocido. Indica uno con `/afk list clan:<nombre>`.")
			return
		}
		views, err := r.afk.ListForGroup(ctx, clan.GroupID, r.afk.Now())
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo consultar: "+err.Error())
			return
		}
		if len(views) == 0 {
			ReplyEphemeral(s, ic, fmt.Sprintf("ℹ️ Nadie está AFK en **%s**.", clan.Name))
			return
		}
		ReplyChunked(s, ic, formatAfkList(clan.Name, views))

	case "me":
		views, err := r.afk.ListForUser(ctx, userID, r.afk.Now())
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo consultar: "+err.Error())
			return
		}
		if len(views) == 0 {
			ReplyEphemeral(s, ic, "ℹ️ No tienes ausencias vigentes ni programadas.")
			return
		}
		ReplyChunked(s, ic, formatAfkList(memberDisplayName(ic.Member), views))

	case "history":
		target := ic.Member.User
		if u, has := optUser(ic, s, "user"); has {
			target = u
		}
		targetID, err := strconv.ParseInt(target.ID, 10, 64)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ Usuario inválido.")
			return
		}
		items, err := r.afk.History(ctx, targetID, 0)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo consultar: "+err.Error())
			return
		}
		if len(items) == 0 {
			ReplyEphemeral(s, ic, "ℹ️ Sin historial para ese usuario.")
			return
		}
		ReplyChunked(s, ic, formatHistory(target.Username, items))

	case "stats":
		var groupID *int64
		title := "todos los clanes"
		if name, has := optStr(ic, "clan"); has && name != "" {
			clan, ok := r.clanByName(name)
			if !ok {
				ReplyEphemeral(s, ic, "⚠️ Clan desconocido.")
				return
			}
			groupID = &clan.GroupID
			title = clan.Name
		}
		st, err := r.afk.Stats(ctx, groupID, r.afk.Now())
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo consultar: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf(
			"📊 **Ausencias de %s**\n• registros: **%d**\n• usuarios distintos: **%d**\n• AFK ahora: **%d**\n• programadas: **%d**\n• duración promedio: **%.1f días**",
			title, st.Total, st.UniqueUsers, st.ActiveNow, st.ScheduledFuture, st.AvgDurationDays,
		))

	case "purge":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		target, has := optUser(ic, s, "user")
		if !has {
			ReplyEphemeral(s, ic, "⚠️ Falta el usuario.")
			return
		}
		targetID, err := strconv.ParseInt(target.ID, 10, 64)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ Usuario inválido.")
			return
		}
		all, _ := optBool(ic, "all")
		n, err := r.afk.Purge(ctx, targetID, all)
		if err != nil {
			ReplyEphemeral(s, ic, "⚠️ No se pudo purgar: "+err.Error())
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("🗑️ Eliminados **%d** registros de %s.", n, target.Username))
	}
}

func afkErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidRange):
		return "⚠️ El fin debe ser posterior al inicio."
	case errors.Is(err, service.ErrPastEnd):
		return "⚠️ Esa ausencia ya habría terminado."
	case errors.Is(err, service.ErrPastStart):
		return "⚠️ El inicio no puede estar en el pasado."
	case errors.Is(err, service.ErrInvalidDays):
		return "⚠️ Los días deben ser un entero positivo."
	case errors.Is(err, service.ErrBadInstant):
		return "⚠️ Fecha u hora no reconocida."
	default:
		return "⚠️ No se pudo registrar la ausencia: " + err.Error()
	}
}
