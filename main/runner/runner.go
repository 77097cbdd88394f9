package main

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/core"
	"asset-transfer-client/core/configs/parsers"
	"asset-transfer-client/core/results"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func run(args *core.Arguments) error {
	if err := core.PrepareLogger(args.Verbosity); err != nil {
		return err
	}
	defer zap.L().Sync()

	config, err := parsers.ParseAppConfig(args.ConfigPath)
	if err != nil {
		return err
	}

	zap.L().Info("loading configs",
		zap.String("config", config.Path),
		zap.String("profile", config.Network.ProfilePath),
		zap.String("wallet", config.Wallet.Path))

	wallet, err := clientinterfaces.NewFabricWallet(config.Wallet.Path)
	if err != nil {
		return core.NewError(core.KindBootstrap, "open wallet", err)
	}

	ca, err := clientinterfaces.NewFabricCA(clientinterfaces.FabricCAConfig{
		ProfilePath:  config.Network.ProfilePath,
		Organization: config.Network.Organization,
		CAID:         config.Network.CAID,
		MspID:        config.Network.MspID,
		KeyStorePath: config.Network.KeyStorePath,
	})
	if err != nil {
		return core.NewError(core.KindBootstrap, "create CA client", err)
	}
	defer ca.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &core.TransactionRunner{
		Config:    config,
		Wallet:    wallet,
		CA:        ca,
		Connector: clientinterfaces.FabricConnector{},
	}

	report, err := runner.Run(ctx)

	if report != nil && args.ResultsDir != "" {
		path, writeErr := results.WriteReportToFile(config.Path, report, args.ResultsDir)
		if writeErr != nil {
			zap.L().Error("failed to write report", zap.Error(writeErr))
		} else {
			zap.L().Info("report written", zap.String("path", path))
		}
	}

	return err
}

func main() {
	cmd := core.DefineArguments("runner", "Enrolls the application user and runs the asset transfer transactions", true,
		func(args *core.Arguments) error {
			err := run(args)
			if err != nil {
				zap.L().Error("******** FAILED to run the application",
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
