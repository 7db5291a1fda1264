//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/gorilla/mux"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/cmd/bot/config"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/commands"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/dataaccess"
	"github.com/lirobabyxoxo/Sayaburradocarlaho/pkg/logging"
)

func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		wire.Value(logging.Name(config.AppName)),
		logging.NewConfig,
		logging.CommonLogger,
		config.Parse,
		provideStoreConfig,
		dataaccess.NewGuildStore,
		provideSession,
		provideEnv,
		provideLimiter,
		commands.NewDefaultRegistry,
		commands.NewDispatcher,
		mux.NewRouter,
		NewApp,
	)
	return new(App), nil, nil
}
