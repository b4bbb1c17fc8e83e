package main

import (
	trmgorm "github.com/avito-tech/go-transaction-manager/gorm"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"go.uber.org/zap"

	"github.com/moveboard/dispatch/config"
	"github.com/moveboard/dispatch/internal/http"
	"github.com/moveboard/dispatch/internal/http/controller"
	"github.com/moveboard/dispatch/internal/repository/repositories"
	"github.com/moveboard/dispatch/internal/usecase/availability"
	"github.com/moveboard/dispatch/internal/usecase/reservation"
	"github.com/moveboard/dispatch/pkg/db/postgresql"
)

func main() {

	dbConf := config.DatabaseConf()
	db := postgresql.GetInstance(
		dbConf.Pgsql.Host,
		dbConf.Pgsql.Username,
		dbConf.Pgsql.Password,
		dbConf.Pgsql.Database,
		dbConf.Pgsql.Port,
	)

	appConf := config.NewAppConfig()

	logger, err := newLogger(appConf.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := repositories.AutoMigrate(db); err != nil {
		logger.Fatal("schema migration failed", zap.Error(err))
	}

	providerRepo := repositories.NewProviderRepo(db, trmgorm.DefaultCtxGetter)
	ruleRepo := repositories.NewCapacityRuleRepo(db, trmgorm.DefaultCtxGetter)
	overrideRepo := repositories.NewAvailabilityOverrideRepo(db, trmgorm.DefaultCtxGetter)
	quoteRepo := repositories.NewQuoteRepo(db, trmgorm.DefaultCtxGetter)
	jobRepo := repositories.NewScheduledJobRepo(db, trmgorm.DefaultCtxGetter)
	bookingRepo := repositories.NewBookingRepo(db, trmgorm.DefaultCtxGetter)
	notificationRepo := repositories.NewNotificationRepo(db, trmgorm.DefaultCtxGetter)

	m, err := manager.New(trmgorm.NewDefaultFactory(db))
	if err != nil {
		panic(err)
	}

	availabilityUseCase := availability.New(m, ruleRepo, overrideRepo, jobRepo)
	reservationUseCase := reservation.New(
		m,
		logger,
		availabilityUseCase,
		providerRepo,
		quoteRepo,
		jobRepo,
		bookingRepo,
		notificationRepo,
	)

	cs := http.Controllers{
		ReservationController: controller.NewReservationController(reservationUseCase),
		ProviderController:    controller.NewProviderController(availabilityUseCase),
	}
	r := http.NewRouter(cs)

	e := http.NewHttpServer(appConf)
	r.SetupRoutes(e)

	e.Logger.Fatal(e.Start(appConf.ListenAddr))
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
