package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jose-valero/clan-afk-bot/internal/app/service"
	"github.com/jose-valero/clan-afk-bot/internal/infra/storage"
)

// afkctl: herramienta local de administración sobre la tabla de ausencias.
func main() {
	var (
		dbPath    = flag.String("db", "", "ruta de la base (por defecto DB_PATH o afk_bot.db)")
		group     = flag.Int64("group", 0, "limitar a un group_id")
		doStats   = flag.Bool("stats", false, "mostrar estadísticas")
		doList    = flag.Bool("list", false, "listar ausencias visibles")
		purgeUser = flag.Int64("purge", 0, "user_id a purgar")
		purgeAll  = flag.Bool("all", false, "purgar también el historial inactivo")
		offset    = flag.Int("offset", 1, "offset horario civil (horas)")
	)
	flag.Parse()

	_ = godotenv.Load()
	if *dbPath == "" {
		if *dbPath = os.Getenv("DB_PATH"); *dbPath == "" {
			*dbPath = "afk_bot.db"
		}
	}

	loc := time.FixedZone(fmt.Sprintf("UTC%+d", *offset), *offset*3600)
	ctx := context.Background()

	db, err := storage.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}

	repo := storage.NewAFKRepo(db, loc)
	now := time.Now().In(loc).Truncate(time.Second)

	var gp *int64
	if *group != 0 {
		gp = group
	}

	switch {
	case *doStats:
		st, err := repo.Stats(ctx, gp, now)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("total=%d unique_users=%d active_now=%d scheduled=%d avg_days=%.2f\n",
			st.Total, st.UniqueUsers, st.ActiveNow, st.ScheduledFuture, st.AvgDurationDays)

	case *doList:
		items, err := repo.ListActive(ctx, gp, now)
		if err != nil {
			log.Fatal(err)
		}
		for _, it := range items {
			fmt.Printf("%-20d %-24s %s → %s  [%s] grupo=%d\n",
				it.UserID, it.DisplayName,
				it.StartTime.Format("02.01.2006 15:04"), it.EndTime.Format("02.01.2006 15:04"),
				service.DeriveStatus(it.StartTime, it.EndTime, now), it.GroupID)
		}

	case *purgeUser != 0:
		n, err := repo.Purge(ctx, *purgeUser, *purgeAll)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("eliminados %d registros del usuario %d\n", n, *purgeUser)

	default:
		flag.Usage()
	}
}
