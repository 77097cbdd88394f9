package core

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/blockchains/types"
	"asset-transfer-client/core/configs"
)

// Action is how a step of the script reaches the ledger
type Action uint8

const (
	// ActionEvaluate queries one peer.
	ActionEvaluate Action = iota
	// ActionSubmit endorses, orders and commits.
	ActionSubmit
	// ActionSubmitTracked submits and keeps the transaction id for a later lookup.
	ActionSubmitTracked
	// ActionLookup reads the last tracked transaction back through the query system chaincode.
	ActionLookup
	// ActionExpectRejection submits a transaction the contract has to reject.
	ActionExpectRejection
)

func (a Action) String() string {
	switch a {
	case ActionEvaluate:
		return "evaluate"
	case ActionSubmit:
		return "submit"
	case ActionSubmitTracked:
		return "submit-tracked"
	case ActionLookup:
		return "lookup"
	case ActionExpectRejection:
		return "expect-rejection"
	default:
		return "unknown"
	}
}

// Step is one transaction of the script
type Step struct {
	Action      Action
	TX          types.FabricTX
	Description string // Logged before the step runs
}

// BuildScript returns the steps of a run of the basic asset-transfer
// contract, in the order they must be issued.
func BuildScript(c *configs.AppConfig) []Step {
	s := c.Script
	steps := make([]Step, 0, 11)

	add := func(action Action, description string, function string, args ...string) {
		functionType := types.FunctionTypeWrite
		if action == ActionEvaluate || action == ActionLookup {
			functionType = types.FunctionTypeRead
		}
		steps = append(steps, Step{
			Action: action,
			TX: types.FabricTX{
				ID:           uint64(len(steps)),
				FunctionName: function,
				FunctionType: functionType,
				Args:         args,
			},
			Description: description,
		})
	}

	if s.InitLedger {
		add(ActionSubmit, "Submit Transaction: InitLedger, function creates the initial set of assets on the ledger",
			"InitLedger")
	}

	if s.CreateAsset != nil {
		add(ActionSubmit, "Submit Transaction: CreateAsset, creates new asset with ID, color, owner, size, and appraisedValue arguments",
			"CreateAsset", s.CreateAsset.Args(s.CreateAsset.ID)...)
	}

	add(ActionEvaluate, "Evaluate Transaction: GetAllAssets, function returns all the current assets on the ledger",
		"GetAllAssets")

	add(ActionEvaluate, "Evaluate Transaction: ReadAsset, function returns an asset with a given assetID",
		"ReadAsset", s.ReadAssetID)

	add(ActionEvaluate, "Evaluate Transaction: AssetExists, function returns \"true\" if an asset with given assetID exist",
		"AssetExists", s.TargetAssetID)

	add(ActionSubmitTracked, "Submit Transaction: UpdateAsset "+s.TargetAssetID+", change the appraisedValue to "+s.Update.AppraisedValue,
		"UpdateAsset", s.Update.Args(s.TargetAssetID)...)

	// Arguments are the channel and the id of the tracked transaction, known at run time
	add(ActionLookup, "Evaluate Transaction: "+clientinterfaces.QSCCGetTransactionByID+", read back the arguments of the update",
		clientinterfaces.QSCCGetTransactionByID)

	add(ActionEvaluate, "Evaluate Transaction: ReadAsset, function returns \""+s.TargetAssetID+"\" attributes",
		"ReadAsset", s.TargetAssetID)

	add(ActionExpectRejection, "Submit Transaction: UpdateAsset "+s.MissingAssetID+", "+s.MissingAssetID+" does not exist and should return an error",
		"UpdateAsset", s.MissingUpdate.Args(s.MissingAssetID)...)

	add(ActionSubmit, "Submit Transaction: TransferAsset "+s.TargetAssetID+", transfer to new owner of "+s.TransferOwner,
		"TransferAsset", s.TargetAssetID, s.TransferOwner)

	add(ActionEvaluate, "Evaluate Transaction: ReadAsset, function returns \""+s.TargetAssetID+"\" attributes",
		"ReadAsset", s.TargetAssetID)

	return steps
}
