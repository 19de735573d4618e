package handlers

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"stocksync/internal/config"
	"stocksync/internal/netmon"
	"stocksync/internal/remote"
	"stocksync/internal/repos"
	"stocksync/internal/reports"
	"stocksync/internal/store"
	syncer "stocksync/internal/sync"
)

type Deps struct {
	ItemHandler     *ItemHandler
	ReportHandler   *ReportHandler
	ActivityHandler *ActivityHandler
	SyncHandler     *SyncHandler

	Monitor *netmon.Monitor
}

func NewDeps(db *sqlx.DB, cfg *config.Config, log zerolog.Logger) *Deps {
	itemRepo := repos.NewItemRepo(db)
	activityRepo := repos.NewActivityRepo(db)

	st := store.New(itemRepo, activityRepo, log)
	reportSvc := reports.New(st)

	mon := netmon.New()
	source := remote.NewClient(cfg.Source.URL, cfg.Source.Timeout())
	coordinator := syncer.New(st, source, mon, log)

	return &Deps{
		ItemHandler:     &ItemHandler{Store: st},
		ReportHandler:   &ReportHandler{Reports: reportSvc},
		ActivityHandler: &ActivityHandler{Store: st},
		SyncHandler:     &SyncHandler{Sync: coordinator, Monitor: mon},
		Monitor:         mon,
	}
}
