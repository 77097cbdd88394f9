package core

import (
	"github.com/hyperledger/fabric-sdk-go/pkg/common/logging"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SDK logging modules raised to debug along with the application
var sdkModules = []string{"fabsdk", "fabsdk/client", "fabsdk/core", "fabsdk/fab", "fabsdk/msp", "fabsdk/util"}

// PrepareLogger installs the global development logger at the given level
// ("debug", "info", "warn", "error"). At debug the SDK logs as well.
func PrepareLogger(verbosity string) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(verbosity)); err != nil {
		return errors.Wrapf(err, "invalid verbosity %q", verbosity)
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(level)
	logger, err := config.Build()

	if err != nil {
		return errors.Wrap(err, "failed to produce a logger")
	}
	zap.ReplaceGlobals(logger)

	sdkLevel := logging.WARNING
	if level == zapcore.DebugLevel {
		sdkLevel = logging.DEBUG
	}
	for _, module := range sdkModules {
		logging.SetLevel(module, sdkLevel)
	}

	return nil
}
