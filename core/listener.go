package core

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/blockchains/types"
	"asset-transfer-client/core/configs"
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EventListener prints the events of the contract as the application user
type EventListener struct {
	Config    *configs.AppConfig
	Wallet    clientinterfaces.Wallet
	Connector clientinterfaces.Connector
	Logger    *zap.Logger // zap.L() when nil

	// Started, when set, is closed once the listener is registered
	Started chan struct{}
}

// Listen connects with the user identity, which must already be in the
// wallet, and logs every contract event until ctx is done. Returns nil when
// stopped through ctx.
func (l *EventListener) Listen(ctx context.Context) error {
	logger := l.logger()
	c := l.Config

	if !l.Wallet.Exists(c.User.Label) {
		return NewError(KindConnect, "connect gateway",
			errors.Errorf("an identity for the user %s does not exist in the wallet, run the transaction runner first", c.User.Label))
	}

	gw, err := l.Connector.Connect(c.Network.ProfilePath, l.Wallet, c.User.Label, clientinterfaces.ConnectOptions{
		AsLocalhost: c.Gateway.AsLocalhost,
		Timeout:     c.Gateway.Timeout,
	})
	if err != nil {
		return NewError(KindConnect, "connect gateway", err)
	}
	defer gw.Close()

	network, err := gw.GetNetwork(c.Network.Channel)
	if err != nil {
		return NewError(KindConnect, "get network "+c.Network.Channel, err)
	}
	contract := network.GetContract(c.Network.Contract)

	registration, events, err := contract.RegisterEvent(c.Events.Filter)
	if err != nil {
		return NewError(KindConnect, "register contract listener", err)
	}
	defer contract.Unregister(registration)

	logger.Info("EVENT LISTENER START!",
		zap.String("channel", network.Name()),
		zap.String("contract", contract.Name()),
		zap.String("filter", c.Events.Filter))

	if l.Started != nil {
		close(l.Started)
	}

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return NewError(KindUnexpected, "receive contract events", errors.New("event stream closed"))
			}
			logEvent(logger, event)
		case <-ctx.Done():
			logger.Info("EVENT LISTENER STOP!")
			return nil
		}
	}
}

func logEvent(logger *zap.Logger, event *types.FabricContractEvent) {
	logger.Info("EVENT OCCURRED !",
		zap.String("chaincode_id", event.ChaincodeID),
		zap.String("event_name", event.EventName),
		zap.ByteString("payload", event.Payload),
		zap.String("tx_id", event.TxID),
		zap.Uint64("block_number", event.BlockNumber))
}

func (l *EventListener) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.L()
	}
	return l.Logger
}
