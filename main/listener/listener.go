package main

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/core"
	"asset-transfer-client/core/configs/parsers"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func listen(args *core.Arguments) error {
	if err := core.PrepareLogger(args.Verbosity); err != nil {
		return err
	}
	defer zap.L().Sync()

	config, err := parsers.ParseAppConfig(args.ConfigPath)
	if err != nil {
		return err
	}

	wallet, err := clientinterfaces.NewFabricWallet(config.Wallet.Path)
	if err != nil {
		return core.NewError(core.KindConnect, "open wallet", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := &core.EventListener{
		Config:    config,
		Wallet:    wallet,
		Connector: clientinterfaces.FabricConnector{},
	}
	return listener.Listen(ctx)
}

func main() {
	cmd := core.DefineArguments("listener", "Prints the events of the asset transfer contract until interrupted", false,
		func(args *core.Arguments) error {
			err := listen(args)
			if err != nil {
				zap.L().Error("******** FAILED to run listener",
					zap.Stringer("kind", core.KindOf(err)),
					zap.Error(err))
			}
			return err
		})
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
