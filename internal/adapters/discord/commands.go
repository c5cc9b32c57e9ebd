package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "afk",
		Description: "Gestiona las ausencias del clan",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Registra una ausencia con fecha de fin",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "until", Description: "Fin de la ausencia (p.ej. 16.09. 18:00)", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "from", Description: "Inicio (por defecto: ahora)"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Motivo"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "quick",
				Description: "AFK desde ya hasta el final del día (o de varios días)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "days", Description: "Cantidad de días (>= 1)"},
					{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Motivo"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "end", Description: "Cierra tu ausencia activa"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Ausencias vigentes del clan",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "clan", Description: "Nombre del clan (por defecto: el tuyo)"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "me", Description: "Tus ausencias vigentes y programadas"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "history",
				Description: "Últimas ausencias de un usuario",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Usuario (por defecto: vos)"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stats",
				Description: "Estadísticas de ausencias",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "clan", Description: "Limitar a un clan"},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "purge",
				Description: "Borra registros de un usuario (admins)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Usuario a purgar", Required: true},
					{Type: discordgo.ApplicationCommandOptionBoolean, Name: "all", Description: "Borrar también el historial inactivo"},
				},
			},
		},
	},
	{
		Name:        "members",
		Description: "Lista los miembros de un rol y compara con el feed de inscripciones",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Rol a listar", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "signup_url", Description: "URL del JSON de inscripciones"},
		},
	},
	{
		Name:        "roles",
		Description: "Muestra los roles del servidor",
	},
}
