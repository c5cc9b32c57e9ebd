package discord

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/clan-afk-bot/internal/app/service"
)

func (r *Router) handleMembers(ctx context.Context, s *discordgo.Session, ic *discordgo.InteractionCreate) {
	role, has := optRole(ic, s)
	if !has {
		ReplyEphemeral(s, ic, "⚠️ Falta el rol.")
		return
	}

	all, err := r.guildMembers(ic.GuildID)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude listar los miembros: "+err.Error())
		return
	}

	var members []service.RoleMember
	for _, m := range all {
		if !hasRole(m, role.ID) {
			continue
		}
		members = append(members, service.RoleMember{
			Username:    m.User.Username,
			DisplayName: memberDisplayNameOrEmpty(m),
		})
	}

	url, _ := optStr(ic, "signup_url")
	report, err := r.members.Report(ctx, role.Name, members, url)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude armar el reporte: "+err.Error())
		return
	}
	ReplyChunked(s, ic, report)
}

func (r *Router) handleRoles(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	roles, err := s.GuildRoles(ic.GuildID)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude listar los roles: "+err.Error())
		return
	}
	members, err := r.guildMembers(ic.GuildID)
	if err != nil {
		ReplyEphemeral(s, ic, "⚠️ No pude listar los miembros: "+err.Error())
		return
	}

	counts := make(map[string]int)
	for _, m := range members {
		for _, rid := range m.Roles {
			counts[rid]++
		}
	}

	sort.Slice(roles, func(i, j int) bool { return roles[i].Position > roles[j].Position })

	var b strings.Builder
	b.WriteString("**Roles del servidor:**\n\n")
	for _, ro := range roles {
		if ro.Name == "@everyone" {
			continue
		}
		fmt.Fprintf(&b, "• **%s**\n", ro.Name)
		fmt.Fprintf(&b, "  - Miembros: %d\n", counts[ro.ID])
		fmt.Fprintf(&b, "  - Color: #%06x\n", ro.Color)
		fmt.Fprintf(&b, "  - Posición: %d\n", ro.Position)
		fmt.Fprintf(&b, "  - Mencionable: %v\n", ro.Mentionable)
		fmt.Fprintf(&b, "  - Separado: %v\n\n", ro.Hoist)
	}
	ReplyChunked(s, ic, b.String())
}

// guildMembers pagina la API de miembros (tope de 1000 por página).
func (r *Router) guildMembers(guildID string) ([]*discordgo.Member, error) {
	var out []*discordgo.Member
	after := ""
	for {
		batch, err := r.s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return out, nil
		}
		out = append(out, batch...)
		after = batch[len(batch)-1].User.ID
		if len(batch) < 1000 {
			return out, nil
		}
	}
}

func hasRole(m *discordgo.Member, roleID string) bool {
	for _, id := range m.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
