package app

import (
	"context"
	gameAPI "redblack/internal/api/game"
	"redblack/internal/config"
	"redblack/internal/config/env"
	"redblack/internal/events"
	"redblack/internal/logger"
	"redblack/internal/metrics"
	"redblack/internal/middleware"
	"redblack/internal/producer"
	"redblack/internal/pubsub"
	"redblack/internal/repository"
	"redblack/internal/repository/house_stats_repo"
	"redblack/internal/repository/ledger_repo"
	"redblack/internal/scheduler"
	"redblack/internal/service"
	"redblack/internal/service/game"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logging
	logCfg config.LogConfig
	log    *zap.Logger

	// Game bits
	gameCfg   config.GameConfig
	ledger    repository.LedgerRepository
	houseRepo repository.HouseStatsRepository
	gameServ  service.GameService
	gameHand  *gameAPI.Handler

	// Session tokens
	jwtCfg config.JWTConfig

	// Observers
	collector  *metrics.Collector
	brokerCfg  config.BrokerConfig
	dispatcher *events.Dispatcher

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg().ServiceName(), sp.LogCfg().Env())
		if err != nil {
			panic("failed to build logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) BrokerCfg() config.BrokerConfig {
	if sp.brokerCfg == nil {
		sp.brokerCfg = env.NewBrokerConfig()
	}
	return sp.brokerCfg
}

func (sp *ServiceProvider) LedgerRepository() repository.LedgerRepository {
	if sp.ledger == nil {
		sp.ledger = ledger_repo.NewLedgerRepository()
	}
	return sp.ledger
}

func (sp *ServiceProvider) HouseStatsRepository() repository.HouseStatsRepository {
	if sp.houseRepo == nil {
		sp.houseRepo = house_stats_repo.NewHouseStatsRepository(sp.Logger())
	}
	return sp.houseRepo
}

func (sp *ServiceProvider) Collector() *metrics.Collector {
	if sp.collector == nil {
		sp.collector = metrics.NewCollector()
	}
	return sp.collector
}

// Dispatcher publishes to whichever brokers are configured, with none it is backed by a no-op
func (sp *ServiceProvider) Dispatcher(ctx context.Context) *events.Dispatcher {
	if sp.dispatcher == nil {
		cfg := sp.BrokerCfg()
		log := sp.Logger()

		var pubs events.MultiPublisher
		if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
			w := producer.NewWriter(brokers, cfg.RoundsTopic())
			pubs = append(pubs, producer.NewKafkaPublisher(w, cfg.RoundsTopic()))
			log.Info("kafka publisher enabled", zap.Strings("brokers", brokers), zap.String("topic", cfg.RoundsTopic()))
		}
		if addr := cfg.RedisAddr(); addr != "" {
			rdb, err := pubsub.ConnectRedis(ctx, addr)
			if err != nil {
				log.Warn("redis unavailable, snapshot broadcast disabled", zap.String("addr", addr), zap.Error(err))
			} else {
				pubs = append(pubs, pubsub.NewRedisBroadcaster(rdb, cfg.SnapshotChannel()))
				log.Info("redis broadcaster enabled", zap.String("channel", cfg.SnapshotChannel()))
			}
		}

		var pub events.Publisher = events.NopPublisher{}
		if len(pubs) > 0 {
			pub = pubs
		}
		sp.dispatcher = events.NewDispatcher(pub, log, events.DefaultQueueSize)
	}
	return sp.dispatcher
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(game.Deps{
			Config:    sp.GameCfg(),
			Ledger:    sp.LedgerRepository(),
			House:     sp.HouseStatsRepository(),
			Scheduler: scheduler.New(),
			Observer:  game.MultiObserver{sp.Collector(), sp.Dispatcher(ctx)},
			Log:       sp.Logger(),
			// a session outlives its token by at most one more idle period
			IdleTimeout: sp.JWTCfg().SessionTokenDuration(),
		})
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:      sp.GameService(ctx),
			SecretKey: sp.JWTCfg().SessionTokenSecretKey(),
			TokenTTL:  sp.JWTCfg().SessionTokenDuration(),
			Log:       sp.Logger(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = NewRouter(sp.GameHandler(ctx), sp.JWTCfg().SessionTokenSecretKey())
	}

	return sp.router
}

// NewRouter mounts the game endpoints. Everything under /session needs a session token.
func NewRouter(h *gameAPI.Handler, secretKey []byte) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Post("/sessions", h.CreateSession)
	r.Get("/house", h.HouseReport)

	r.Route("/session", func(rr chi.Router) {
		rr.Use(middleware.SessionAuth(secretKey))

		rr.Get("/", h.Snapshot)
		rr.Delete("/", h.EndSession)
		rr.Get("/ledger", h.Ledger)
		rr.Post("/bet", h.PlaceBet)
		rr.Post("/close-result", h.CloseResult)
		rr.Post("/cashout", h.CashOut)
		rr.Post("/credit", h.Credit)
		rr.Post("/shop/history-extension", h.BuyHistoryExtension)
		rr.Post("/shop/double-progress", h.BuyDoubleProgress)
	})

	return r
}
