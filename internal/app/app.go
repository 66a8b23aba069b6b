package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"toolsbot/core/bootstrap"
	corecmd "toolsbot/core/cmd"
	tg "toolsbot/core/telegram"
	"toolsbot/core/telegram/router"
	"toolsbot/internal/chatlog"
	"toolsbot/internal/flow"
	"toolsbot/internal/handlers"
	"toolsbot/internal/history"
	"toolsbot/internal/repository"
	"toolsbot/internal/service"
)

// botTransport hands the relay a send path that only exists once the
// bot is running.
type botTransport struct {
	bot atomic.Pointer[tele.Bot]
}

func (t *botTransport) bind(b *tele.Bot) { t.bot.Store(b) }

func (t *botTransport) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b := t.bot.Load()
	if b == nil {
		return nil, errors.New("app: bot not started")
	}
	return b.Send(to, what, opts...)
}

// App aggregates the wired services of the bot.
type App struct {
	cfg *Config
	db  *sqlx.DB

	registry   *tg.Registry
	handlers   *handlers.Handlers
	dispatcher *flow.Dispatcher
	relay      *service.Relay
	transport  *botTransport
}

// Bootstrap initializes infrastructure and wires every service.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}
	core := cfg.CoreConfig()

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	users := repository.NewUsers(res.DB)
	words := repository.NewBannedWords(res.DB)
	cmds := repository.NewCustomCommands(res.DB)

	mod := service.NewModeration(words)
	profiles := service.NewProfiles(users, mod, core.Telegram.OwnerID, core.Bot.DefaultLanguage, service.Limits{
		MaxName:     core.Bot.MaxNameLength,
		MaxSentence: core.Bot.MaxSentenceLength,
	})
	transport := &botTransport{}
	relay := service.NewRelay(transport, users, profiles)
	custom := service.NewCustomCommands(cmds)

	transcript, err := chatlog.New(core.Logging.ChatDir)
	if err != nil {
		return nil, err
	}

	tracker := flow.NewTracker(users, time.Duration(core.Bot.PendingTTLMinutes)*time.Minute)
	flows := flow.NewRegistry()
	registry := tg.NewRegistry()

	h := handlers.New(profiles, mod, relay, custom, history.NewWikimediaClient(nil), tracker, transcript)
	h.Register(registry, flows)

	dispatcher := flow.NewDispatcher(profiles, tracker, flows, custom, transcript)
	dispatcher.Denied = func(c tele.Context, _ string) error {
		return h.DenyRestricted(c)
	}

	return &App{
		cfg:        cfg,
		db:         res.DB,
		registry:   registry,
		handlers:   h,
		dispatcher: dispatcher,
		relay:      relay,
		transport:  transport,
	}, nil
}

// TelegramRunOptions implements corecmd.TelegramApp.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		Access: a.handlers.AccessOptions(),
		Guard:  a.handlers.PermissionGuard(),
	})
	routes = append(routes, router.MessageRoutes(a.registry, router.MessageRouteOptions{
		Fallback: a.dispatcher.HandleMessage,
	})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(core, nil),
		Routes:      routes,
		// Per-user ordering matters: a pending event must be consumed by
		// the next message, not by whichever goroutine wins.
		Synchronous: true,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			a.transport.bind(rt.Bot)
			if !core.Bot.DevMode {
				a.relay.Announce(ctx, "online")
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			if !core.Bot.DevMode {
				a.relay.Announce(ctx, "offline")
			}
			return a.db.Close()
		},
	}, nil
}
