package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Clan vincula un rol de Discord con el group_id que usa la tabla de ausencias.
type Clan struct {
	Name    string `yaml:"name"`
	RoleID  string `yaml:"role_id"`
	GroupID int64  `yaml:"group_id"`
}

type Config struct {
	DiscordToken string
	DiscordGuild string
	DBPath       string
	AdminRoleIDs []string

	Clans    []Clan
	Location *time.Location // convención civil única del bot
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}

	cfg := Config{
		DiscordToken: get("DISCORD_BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", true),
		DBPath:       get("DB_PATH", false),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "afk_bot.db"
	}

	if raw := get("ADMIN_ROLE_IDS", false); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
			}
		}
	}

	// UTC+1 salvo que se configure otra cosa
	offset := 1
	if raw := get("TIME_OFFSET_HOURS", false); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("TIME_OFFSET_HOURS inválido: %v", err)
		}
		offset = n
	}
	cfg.Location = time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600)

	clansFile := get("CLANS_FILE", false)
	if clansFile == "" {
		clansFile = "clans.yaml"
	}
	clans, err := loadClans(clansFile)
	if err != nil {
		log.Fatalf("cargando %s: %v", clansFile, err)
	}
	cfg.Clans = clans

	return cfg
}

func loadClans(path string) ([]Clan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc struct {
		Clans []Clan `yaml:"clans"`
	}
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, err
	}
	if len(doc.Clans) == 0 {
		return nil, fmt.Errorf("no hay clanes definidos")
	}
	for _, c := range doc.Clans {
		if c.Name == "" || c.RoleID == "" || c.GroupID == 0 {
			return nil, fmt.Errorf("clan incompleto: %+v", c)
		}
	}
	return doc.Clans, nil
}
