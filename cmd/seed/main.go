package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	crmapp "github.com/clinic/backend/internal/application/crm"
	"github.com/clinic/backend/internal/domain/crm"
	"github.com/clinic/backend/internal/domain/shared"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/clinic/backend/internal/infrastructure/logger"
	"github.com/clinic/backend/internal/infrastructure/persistence"
)

// bookingFixture describes one demo booking and the journey it has
// taken so far. Stages are applied in order on top of the initial one.
type bookingFixture struct {
	name     string
	phone    string
	daysAgo  int
	source   string
	medium   string
	campaign string
	stages   []crm.JourneyStage
	status   crm.BookingStatus
}

// fixtures is a fixed demo data set. Dates are relative to the time
// the seeder runs but the set itself is deterministic.
var fixtures = []bookingFixture{
	{
		name: "김민지", phone: "010-1234-5678", daysAgo: 30,
		source: "instagram", medium: "social", campaign: "summer_event",
		stages: []crm.JourneyStage{crm.StageConsultation, crm.StageProcedureScheduled, crm.StageProcedureDone},
		status: crm.BookingStatusCompleted,
	},
	{
		name: "이서연", phone: "010-2345-6789", daysAgo: 21,
		source: "naver", medium: "search", campaign: "brand_keyword",
		stages: []crm.JourneyStage{crm.StageConsultation, crm.StageProcedureScheduled},
		status: crm.BookingStatusConfirmed,
	},
	{
		name: "박지훈", phone: "010-3456-7890", daysAgo: 14,
		source: "instagram", medium: "social", campaign: "summer_event",
		stages: []crm.JourneyStage{crm.StageConsultation},
		status: crm.BookingStatusConfirmed,
	},
	{
		name: "최수아", phone: "010-4567-8901", daysAgo: 10,
		source: "kakao", medium: "message", campaign: "friend_referral",
		stages: nil,
		status: crm.BookingStatusPending,
	},
	{
		name: "김민지", phone: "010-1234-5678", daysAgo: 7,
		source: "direct", medium: "", campaign: "",
		stages: []crm.JourneyStage{crm.StageConsultation, crm.StageProcedureScheduled, crm.StageProcedureDone, crm.StageFollowUp},
		status: crm.BookingStatusCompleted,
	},
	{
		name: "정예린", phone: "010-5678-9012", daysAgo: 5,
		source: "naver", medium: "search", campaign: "event_keyword",
		stages: nil,
		status: crm.BookingStatusCancelled,
	},
	{
		name: "한도윤", phone: "010-6789-0123", daysAgo: 2,
		source: "instagram", medium: "social", campaign: "autumn_event",
		stages: []crm.JourneyStage{crm.StageConsultation},
		status: crm.BookingStatusConfirmed,
	},
}

func main() {
	wipe := flag.Bool("wipe", false, "delete existing CRM data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if *wipe {
		for _, table := range []string{"follow_up_tasks", "customers", "bookings"} {
			if err := db.DB.Exec("DELETE FROM " + table).Error; err != nil {
				log.Fatal("Failed to wipe table", zap.String("table", table), zap.Error(err))
			}
		}
		log.Info("Existing CRM data wiped")
	}

	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	followUpRepo := persistence.NewGormFollowUpRepository(db.DB)

	ctx := context.Background()

	count, err := bookingRepo.Count(ctx, shared.Filter{})
	if err != nil {
		log.Fatal("Failed to count bookings", zap.Error(err))
	}
	if count > 0 {
		log.Info("Bookings already present, skipping seed (use -wipe to reseed)",
			zap.Int64("count", count))
		return
	}

	now := time.Now().Truncate(24 * time.Hour)
	for _, f := range fixtures {
		booking, err := crm.NewBooking(f.name, f.phone, now.AddDate(0, 0, -f.daysAgo), crm.StageInquiry)
		if err != nil {
			log.Fatal("Failed to build fixture booking", zap.String("name", f.name), zap.Error(err))
		}
		if f.source != "" {
			booking.SetAttribution(f.source, f.medium, f.campaign)
		}
		for _, stage := range f.stages {
			if err := booking.AdvanceStage(stage, "seed"); err != nil {
				log.Fatal("Failed to advance fixture stage",
					zap.String("name", f.name), zap.String("stage", string(stage)), zap.Error(err))
			}
		}
		if f.status != crm.BookingStatusPending {
			if err := booking.UpdateStatus(f.status); err != nil {
				log.Fatal("Failed to set fixture status",
					zap.String("name", f.name), zap.String("status", string(f.status)), zap.Error(err))
			}
		}
		if err := bookingRepo.Save(ctx, booking); err != nil {
			log.Fatal("Failed to save fixture booking", zap.String("name", f.name), zap.Error(err))
		}
	}
	log.Info("Demo bookings created", zap.Int("count", len(fixtures)))

	syncService := crmapp.NewSyncService(bookingRepo, customerRepo, followUpRepo, nil, log)
	if err := syncService.Resync(ctx); err != nil {
		log.Fatal("Failed to derive customers and follow-ups", zap.Error(err))
	}

	log.Info("Seed completed")
}
