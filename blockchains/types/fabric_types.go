package types

import "time"

// Function types of a FabricTX
const (
	FunctionTypeRead  = "read"  // evaluated on a single peer, never ordered
	FunctionTypeWrite = "write" // endorsed, ordered and committed
)

// FabricUser is an identity that can be stored in a wallet and used
// to sign proposals on behalf of the application
type FabricUser struct {
	Label string `yaml:"label" json:"label"` // label of the identity in the wallet
	MspID string `yaml:"mspID" json:"mspID"` // MSP the certificate was issued for
	Cert  string `yaml:"cert" json:"cert"`   // PEM encoded enrollment certificate
	Key   string `yaml:"key" json:"key"`     // PEM encoded private key
}

//FabricTX represents all the necessary information for an
// Hyperledger Fabric transaction
type FabricTX struct {
	ID           uint64 `json:"id"`            // position of the transaction in the script
	FunctionName string `json:"function_name"` // name of the function to be invoked in the chaincode/smart contract
	FunctionType string `json:"function_type"` // "write" or "read", indicates whether we query or submit

	Args []string `json:"args"` // arguments to invoke the chaincode
}

// IsWrite reports whether the transaction has to be submitted
func (tx *FabricTX) IsWrite() bool {
	return tx.FunctionType == FunctionTypeWrite
}

// FabricCommitEvent is the outcome of a submitted transaction
type FabricCommitEvent struct {
	TxID           string    // transaction id assigned by the SDK before sending
	Valid          bool      // whether the peers validated the transaction
	ValidationCode string    // peer.TxValidationCode name
	BlockNumber    uint64    // block the transaction was committed in, 0 if unknown
	CommitTime     time.Time // time the commit was observed
}

// FabricContractEvent is an event emitted by a chaincode in a committed transaction
type FabricContractEvent struct {
	ChaincodeID string
	EventName   string
	TxID        string
	BlockNumber uint64
	Payload     []byte
}

// FabricTransactionRecord is what the ledger holds about a committed transaction,
// as decoded from the qscc system chaincode
type FabricTransactionRecord struct {
	TxID           string
	ChannelID      string
	ValidationCode string
	ChaincodeName  string
	Args           []string // the original invocation, function name first
}
