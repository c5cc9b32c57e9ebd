package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/clan-afk-bot/internal/app/service"
	"github.com/jose-valero/clan-afk-bot/internal/infra/storage"
)

func optStr(ic *discordgo.InteractionCreate, name string) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue(), true
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == discordgo.ApplicationCommandOptionString {
					return so.StringValue(), true
				}
			}
		}
	}
	return "", false
}

func optBool(ic *discordgo.InteractionCreate, name string) (bool, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionBoolean {
			return o.BoolValue(), true
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == discordgo.ApplicationCommandOptionBoolean {
					return so.BoolValue(), true
				}
			}
		}
	}
	return false, false
}

func optInt(ic *discordgo.InteractionCreate, name string) (int, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionInteger {
			return int(o.IntValue()), true
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == discordgo.ApplicationCommandOptionInteger {
					return int(so.IntValue()), true
				}
			}
		}
	}
	return 0, false
}

func optUser(ic *discordgo.InteractionCreate, s *discordgo.Session, name string) (*discordgo.User, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionUser {
			return o.UserValue(s), true
		}
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == discordgo.ApplicationCommandOptionUser {
					return so.UserValue(s), true
				}
			}
		}
	}
	return nil, false
}

func optRole(ic *discordgo.InteractionCreate, s *discordgo.Session) (*discordgo.Role, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Type == discordgo.ApplicationCommandOptionRole {
			return o.RoleValue(s, ic.GuildID), true
		}
	}
	return nil, false
}

func subcmdName(ic *discordgo.InteractionCreate) (string, bool) {
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			return o.Name, true
		}
	}
	return "", false
}

func memberDisplayName(m *discordgo.Member) string {
	if n := memberDisplayNameOrEmpty(m); n != "" {
		return n
	}
	return m.User.Username
}

// memberDisplayNameOrEmpty: nick del server, si no el global name, si no vacío.
func memberDisplayNameOrEmpty(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return ""
}

func fmtInstant(t time.Time) string { return t.Format("02.01.2006 15:04") }

func statusBadge(st service.Status) string {
	switch st {
	case service.StatusActive:
		return "🟢"
	case service.StatusScheduled:
		return "🕑"
	default:
		return "⚪"
	}
}

func formatAfkList(title string, views []service.AfkView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Ausencias de %s**\n", title)
	for _, v := range views {
		fmt.Fprintf(&b, "%s **%s** — %s → %s", statusBadge(v.Status), v.DisplayName, fmtInstant(v.StartTime), fmtInstant(v.EndTime))
		if v.Reason != "" {
			fmt.Fprintf(&b, " · _%s_", v.Reason)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatHistory(username string, items []storage.AfkInterval) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗂️ **Historial de %s**\n", username)
	for _, it := range items {
		fmt.Fprintf(&b, "• %s → %s", fmtInstant(it.StartTime), fmtInstant(it.EndTime))
		if it.Reason != "" {
			fmt.Fprintf(&b, " · _%s_", it.Reason)
		}
		if it.EndedAt != nil {
			fmt.Fprintf(&b, " (cerrada %s)", fmtInstant(*it.EndedAt))
		} else if it.IsActive {
			b.WriteString(" (activa)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
