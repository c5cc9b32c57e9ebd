package discord

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/clan-afk-bot/internal/app/service"
	"github.com/jose-valero/clan-afk-bot/internal/infra/config"
)

type Router struct {
	s       *discordgo.Session
	guildID string

	afk     *service.AFKService
	members *service.MembersService
	clans   []config.Clan

	adminRoleIDs []string
	limiter      *userLimiter
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	afk *service.AFKService,
	members *service.MembersService,
	clans []config.Clan,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		afk:          afk,
		members:      members,
		clans:        clans,
		adminRoleIDs: adminRoleIDs,
		limiter:      newUserLimiter(3 * time.Second),
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
}

// clanForRoles: primer clan configurado cuyo rol tenga el miembro.
func (r *Router) clanForRoles(roleIDs []string) (config.Clan, bool) {
	has := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		has[id] = struct{}{}
	}
	for _, c := range r.clans {
		if _, ok := has[c.RoleID]; ok {
			return c, true
		}
	}
	return config.Clan{}, false
}

func (r *Router) clanByName(name string) (config.Clan, bool) {
	for _, c := range r.clans {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return config.Clan{}, false
}
