package clientinterfaces

import (
	"asset-transfer-client/blockchains/types"
	"time"
)

// Wallet is the local store of identities the gateway signs with
type Wallet interface {
	Exists(label string) bool
	Put(label string, user *types.FabricUser) error
	Get(label string) (*types.FabricUser, error)
}

// CAClient talks to the certificate authority of one organization
type CAClient interface {
	// Enroll exchanges an enrollment id and secret for a certificate and key.
	Enroll(enrollmentID string, secret string) (*types.FabricUser, error)
	// Register registers a new client identity under affiliation using the
	// registrar of the CA and returns its enrollment secret.
	Register(enrollmentID string, affiliation string) (string, error)
}

// ConnectOptions are the gateway options taken from configuration
type ConnectOptions struct {
	AsLocalhost bool          // Map discovered peer endpoints to localhost
	Timeout     time.Duration // Commit timeout, zero keeps the SDK default
}

// Connector opens gateway connections
type Connector interface {
	Connect(profilePath string, wallet Wallet, label string, opts ConnectOptions) (Gateway, error)
}

// Gateway manages the network interaction on behalf of one identity.
// Close must be called once the gateway is no longer needed.
type Gateway interface {
	GetNetwork(name string) (Network, error)
	Close()
}

// Network is a channel the gateway is connected to
type Network interface {
	Name() string
	GetContract(chaincodeID string) Contract
}

// Registration identifies an event registration so it can be removed
type Registration interface{}

// Contract is a chaincode deployed on a network
type Contract interface {
	Name() string

	// EvaluateTransaction queries one peer, nothing reaches the ledger.
	EvaluateTransaction(name string, args ...string) ([]byte, error)

	// SubmitTransaction endorses, orders and waits for the commit.
	SubmitTransaction(name string, args ...string) ([]byte, error)

	// SubmitTracked behaves like SubmitTransaction and also returns the
	// commit event, which carries the id the transaction was sent with.
	SubmitTracked(name string, args ...string) ([]byte, *types.FabricCommitEvent, error)

	// RegisterEvent delivers chaincode events whose name matches the
	// eventFilter regular expression until Unregister is called.
	RegisterEvent(eventFilter string) (Registration, <-chan *types.FabricContractEvent, error)
	Unregister(registration Registration)
}
