package main

import (
	"context"
	"log"
	"os"
	"time"

	httpadapter "critterkeep/internal/adapter/http"
	metricsinmem "critterkeep/internal/adapter/metrics/inmemory"
	"critterkeep/internal/adapter/notify"
	gormrepo "critterkeep/internal/adapter/repo/gorm"
	"critterkeep/internal/adapter/repo/memory"
	"critterkeep/internal/app/activity"
	"critterkeep/internal/app/adopt"
	"critterkeep/internal/app/auth"
	"critterkeep/internal/app/care"
	"critterkeep/internal/app/lifecycle"
	"critterkeep/internal/app/ports"
	"critterkeep/internal/app/roster"
	"critterkeep/internal/app/shop"
	"critterkeep/internal/app/trading"
	"critterkeep/internal/config"
	"critterkeep/internal/scheduler"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
)

type repos struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Accessories ports.AccessoryRepository
	HouseItems  ports.HouseItemRepository
	Catalog     ports.CatalogRepository
	Trades      ports.TradeRepository
	Notices     ports.NoticeRepository
	Credentials ports.UserCredentialRepository
	Tx          ports.TxManager
}

func main() {
	cfgPath := os.Getenv("CRITTERKEEP_CONFIG")
	if cfgPath == "" {
		cfgPath = "./config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	r := mustBuildRepos(cfg)

	hub := notify.NewHub()
	notices := notify.PublishingNoticeRepo{Inner: r.Notices, Hub: hub}
	kpiRecorder := metricsinmem.NewRecorder()
	now := time.Now

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{Credentials: r.Credentials, Now: now},
		AuthUC:     auth.VerifyUseCase{Credentials: r.Credentials},
		CareUC: care.UseCase{
			Pets: r.Pets, Activations: r.Activations,
			Notices: notices, Metrics: kpiRecorder, Now: now,
		},
		ActivityUC: activity.UseCase{
			Pets: r.Pets, Activations: r.Activations,
			Notices: notices, Metrics: kpiRecorder, Now: now,
		},
		AdoptUC: adopt.UseCase{
			Pets: r.Pets, Activations: r.Activations, Tx: r.Tx,
			Metrics: kpiRecorder, Now: now, NewID: uuid.NewString,
		},
		PurchaseUC: shop.PurchaseUseCase{
			Pets: r.Pets, Catalog: r.Catalog, Accessories: r.Accessories,
			HouseItems: r.HouseItems, Tx: r.Tx,
			Metrics: kpiRecorder, Now: now, NewID: uuid.NewString,
		},
		ChestUC: shop.OpenChestUseCase{
			Catalog: r.Catalog, Accessories: r.Accessories, Metrics: kpiRecorder,
		},
		TradingUC: trading.UseCase{
			Trades: r.Trades, Pets: r.Pets, Activations: r.Activations,
			Accessories: r.Accessories, HouseItems: r.HouseItems, Tx: r.Tx,
			Metrics: kpiRecorder, Now: now, NewID: uuid.NewString,
		},
		RosterUC: roster.UseCase{
			Pets: r.Pets, Activations: r.Activations, Accessories: r.Accessories,
			HouseItems: r.HouseItems, Catalog: r.Catalog, Notices: notices,
			Tx: r.Tx, Metrics: kpiRecorder, Now: now,
		},
		Catalog:   r.Catalog,
		KPI:       kpiRecorder,
		NoticeHub: hub,
	}

	engine := lifecycle.UseCase{
		Pets:        r.Pets,
		Activations: r.Activations,
		Notices:     notices,
		Metrics:     kpiRecorder,
		Now:         now,
	}
	sched := &scheduler.Scheduler{}
	sched.Add(scheduler.Task{Name: "decay", Interval: cfg.Engine.DecayInterval, Run: engine.DecayTick})
	sched.Add(scheduler.Task{Name: "events", Interval: cfg.Engine.EventInterval, Run: engine.EventTick})
	sched.Add(scheduler.Task{Name: "mutation", Interval: cfg.Engine.MutationInterval, Run: engine.MutationTick})
	sched.Add(scheduler.Task{Name: "dragon", Interval: cfg.Engine.DragonInterval, Run: engine.DragonTick})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	go sched.Run(ctx)

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Printf("critterkeep server listening on %s", cfg.ListenAddr)
	s.Spin()
}

// mustBuildRepos wires the postgres adapters when a DSN is configured and
// falls back to the seeded in-memory store otherwise.
func mustBuildRepos(cfg config.Config) repos {
	if cfg.DatabaseDSN == "" {
		log.Println("no database configured, using in-memory store")
		store := memory.NewStore()
		store.SeedCatalog(memory.DefaultShopItems(), memory.DefaultLootItems())
		return repos{
			Pets:        memory.NewPetRepo(store),
			Activations: memory.NewActivationRepo(store),
			Accessories: memory.NewAccessoryRepo(store),
			HouseItems:  memory.NewHouseItemRepo(store),
			Catalog:     memory.NewCatalogRepo(store),
			Trades:      memory.NewTradeRepo(store),
			Notices:     memory.NewNoticeRepo(store),
			Credentials: memory.NewUserCredentialRepo(store),
			Tx:          memory.NewTxManager(store),
		}
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StartupTimeout)
	defer cancel()
	if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	return repos{
		Pets:        gormrepo.NewPetRepo(db),
		Activations: gormrepo.NewActivationRepo(db),
		Accessories: gormrepo.NewAccessoryRepo(db),
		HouseItems:  gormrepo.NewHouseItemRepo(db),
		Catalog:     gormrepo.NewCatalogRepo(db),
		Trades:      gormrepo.NewTradeRepo(db),
		Notices:     gormrepo.NewNoticeRepo(db),
		Credentials: gormrepo.NewUserCredentialRepo(db),
		Tx:          gormrepo.NewTxManager(db),
	}
}
