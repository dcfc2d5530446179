package main

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/2HgO/subscriber-requests-go/config"
	"github.com/2HgO/subscriber-requests-go/db"
	"github.com/2HgO/subscriber-requests-go/handlers"
	"github.com/2HgO/subscriber-requests-go/services"
)

func main() {
	fx.New(app()).Run()
}

func app() fx.Option {
	return fx.Options(
		fx.Provide(
			NewHttpServer,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewSubscriberHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			services.NewSubscriberService,
			db.NewRecordStore,
			NewLogger,
			config.Load,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(func(*http.Server) {}),
	)
}
