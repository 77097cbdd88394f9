package clientinterfaces

import (
	"asset-transfer-client/blockchains/types"
	"os"
	"path/filepath"
	"strconv"
	"time"

	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric-sdk-go/pkg/common/providers/fab"
	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Environment variable read by the SDK gateway when it rewrites discovered endpoints
const discoveryAsLocalhostEnv = "DISCOVERY_AS_LOCALHOST"

// FabricWallet is a Wallet kept on the file system by the SDK
type FabricWallet struct {
	wallet *gateway.Wallet
}

// NewFabricWallet opens the wallet at path, creating the directory if needed
func NewFabricWallet(path string) (*FabricWallet, error) {
	wallet, err := gateway.NewFileSystemWallet(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create wallet at %s", path)
	}
	return &FabricWallet{wallet: wallet}, nil
}

// Exists reports whether an identity is stored under label
func (w *FabricWallet) Exists(label string) bool {
	return w.wallet.Exists(label)
}

// Put stores user as an X.509 identity under label
func (w *FabricWallet) Put(label string, user *types.FabricUser) error {
	identity := gateway.NewX509Identity(user.MspID, user.Cert, user.Key)

	return w.wallet.Put(label, identity)
}

// Get loads the identity stored under label
func (w *FabricWallet) Get(label string) (*types.FabricUser, error) {
	identity, err := w.wallet.Get(label)
	if err != nil {
		return nil, err
	}

	x509, ok := identity.(*gateway.X509Identity)
	if !ok {
		return nil, errors.Errorf("identity %s is not an X.509 identity", label)
	}

	return &types.FabricUser{
		Label: label,
		MspID: x509.MspID,
		Cert:  x509.Certificate(),
		Key:   x509.Key(),
	}, nil
}

// FabricConnector opens gateways with the SDK
type FabricConnector struct{}

// Connect opens a gateway from the connection profile at profilePath, signing
// with the identity stored in wallet under label.
func (FabricConnector) Connect(profilePath string, wallet Wallet, label string, opts ConnectOptions) (Gateway, error) {
	user, err := wallet.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get identity %s from wallet", label)
	}

	// The SDK only takes its own wallets, hand it a copy of the one identity
	identities := gateway.NewInMemoryWallet()
	err = identities.Put(label, gateway.NewX509Identity(user.MspID, user.Cert, user.Key))
	if err != nil {
		return nil, err
	}

	err = os.Setenv(discoveryAsLocalhostEnv, strconv.FormatBool(opts.AsLocalhost))
	if err != nil {
		zap.L().Warn("Error setting "+discoveryAsLocalhostEnv+" environment variable", zap.Error(err))
	}

	options := []gateway.Option{}
	if opts.Timeout > 0 {
		options = append(options, gateway.WithTimeout(opts.Timeout))
	}

	gw, err := gateway.Connect(
		gateway.WithConfig(config.FromFile(filepath.Clean(profilePath))),
		gateway.WithIdentity(identities, label),
		options...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to gateway")
	}

	return &fabricGateway{gateway: gw}, nil
}

type fabricGateway struct {
	gateway *gateway.Gateway
}

func (g *fabricGateway) GetNetwork(name string) (Network, error) {
	network, err := g.gateway.GetNetwork(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get network %s", name)
	}
	return &fabricNetwork{network: network}, nil
}

func (g *fabricGateway) Close() {
	g.gateway.Close()
}

type fabricNetwork struct {
	network *gateway.Network
}

func (n *fabricNetwork) Name() string {
	return n.network.Name()
}

func (n *fabricNetwork) GetContract(chaincodeID string) Contract {
	return &fabricContract{contract: n.network.GetContract(chaincodeID)}
}

type fabricContract struct {
	contract *gateway.Contract
}

// fabricRegistration pairs the SDK registration with the forwarding goroutine
type fabricRegistration struct {
	inner fab.Registration
	done  chan struct{}
}

func (c *fabricContract) Name() string {
	return c.contract.Name()
}

func (c *fabricContract) EvaluateTransaction(name string, args ...string) ([]byte, error) {
	return c.contract.EvaluateTransaction(name, args...)
}

func (c *fabricContract) SubmitTransaction(name string, args ...string) ([]byte, error) {
	return c.contract.SubmitTransaction(name, args...)
}

func (c *fabricContract) SubmitTracked(name string, args ...string) ([]byte, *types.FabricCommitEvent, error) {
	txn, err := c.contract.CreateTransaction(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create transaction %s", name)
	}

	// Buffered by the SDK, filled before Submit returns
	commits := txn.RegisterCommitEvent()

	result, err := txn.Submit(args...)
	if err != nil {
		return nil, nil, err
	}

	select {
	case status := <-commits:
		return result, toCommitEvent(status), nil
	default:
		return result, nil, errors.Errorf("no commit event for transaction %s", name)
	}
}

func (c *fabricContract) RegisterEvent(eventFilter string) (Registration, <-chan *types.FabricContractEvent, error) {
	registration, notifier, err := c.contract.RegisterEvent(eventFilter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to register contract event")
	}

	events := make(chan *types.FabricContractEvent)
	done := make(chan struct{})

	go func() {
		defer close(events)
		for {
			select {
			case ccEvent, ok := <-notifier:
				if !ok {
					return
				}
				select {
				case events <- toContractEvent(ccEvent):
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	return &fabricRegistration{inner: registration, done: done}, events, nil
}

func (c *fabricContract) Unregister(registration Registration) {
	reg, ok := registration.(*fabricRegistration)
	if !ok {
		return
	}
	close(reg.done)
	c.contract.Unregister(reg.inner)
}

func toCommitEvent(status *fab.TxStatusEvent) *types.FabricCommitEvent {
	return &types.FabricCommitEvent{
		TxID:           status.TxID,
		Valid:          status.TxValidationCode == pb.TxValidationCode_VALID,
		ValidationCode: status.TxValidationCode.String(),
		BlockNumber:    status.BlockNumber,
		CommitTime:     time.Now(),
	}
}

func toContractEvent(ccEvent *fab.CCEvent) *types.FabricContractEvent {
	return &types.FabricContractEvent{
		ChaincodeID: ccEvent.ChaincodeID,
		EventName:   ccEvent.EventName,
		TxID:        ccEvent.TxID,
		BlockNumber: ccEvent.BlockNumber,
		Payload:     ccEvent.Payload,
	}
}
