package core

import (
	"asset-transfer-client/blockchains/clientinterfaces"
	"asset-transfer-client/core/configs"
	"asset-transfer-client/core/results"
	"asset-transfer-client/util"
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TransactionRunner enrolls the identities it needs, connects as the
// application user and runs the script against the contract
type TransactionRunner struct {
	Config    *configs.AppConfig
	Wallet    clientinterfaces.Wallet
	CA        clientinterfaces.CAClient
	Connector clientinterfaces.Connector
	Logger    *zap.Logger // zap.L() when nil
}

// Run bootstraps, connects and runs every step of the script in order.
// The gateway is closed before Run returns, whatever happened after the
// connection succeeded. The report holds the steps that completed, also
// when an error is returned.
func (r *TransactionRunner) Run(ctx context.Context) (*results.Report, error) {
	logger := r.logger()
	c := r.Config

	if err := Bootstrap(r.CA, r.Wallet, c, logger); err != nil {
		return nil, err
	}

	gw, err := r.Connector.Connect(c.Network.ProfilePath, r.Wallet, c.User.Label, clientinterfaces.ConnectOptions{
		AsLocalhost: c.Gateway.AsLocalhost,
		Timeout:     c.Gateway.Timeout,
	})
	if err != nil {
		return nil, NewError(KindConnect, "connect gateway", err)
	}
	defer gw.Close()

	network, err := gw.GetNetwork(c.Network.Channel)
	if err != nil {
		return nil, NewError(KindConnect, "get network "+c.Network.Channel, err)
	}
	contract := network.GetContract(c.Network.Contract)

	logger.Info("connected",
		zap.String("user", c.User.Label),
		zap.String("channel", network.Name()),
		zap.String("contract", contract.Name()))

	return r.runScript(ctx, network, contract, BuildScript(c))
}

func (r *TransactionRunner) runScript(ctx context.Context, network clientinterfaces.Network, contract clientinterfaces.Contract, script []Step) (*results.Report, error) {
	logger := r.logger()
	report := results.NewReport(network.Name(), contract.Name())
	defer report.Finish()

	// Id of the last tracked submit, looked up by the next ActionLookup
	var trackedTxID string

	for _, step := range script {
		if err := ctx.Err(); err != nil {
			return report, NewError(KindUnexpected, "run script", err)
		}

		tx := step.TX
		logger.Info("--> " + step.Description)

		result := results.StepResult{
			ID:       tx.ID,
			Function: tx.FunctionName,
			Type:     tx.FunctionType,
			Args:     tx.Args,
		}

		switch step.Action {
		case ActionEvaluate:
			payload, err := contract.EvaluateTransaction(tx.FunctionName, tx.Args...)
			if err != nil {
				return report, NewError(KindUnexpected, "evaluate "+tx.FunctionName, err)
			}
			result.Payload = string(payload)
			logger.Info("*** Result: " + util.PrettyJSON(payload))

		case ActionSubmit:
			payload, err := contract.SubmitTransaction(tx.FunctionName, tx.Args...)
			if err != nil {
				return report, NewError(KindUnexpected, "submit "+tx.FunctionName, err)
			}
			result.Payload = string(payload)
			logger.Info("*** Result: committed")

		case ActionSubmitTracked:
			payload, commit, err := contract.SubmitTracked(tx.FunctionName, tx.Args...)
			if err != nil {
				return report, NewError(KindUnexpected, "submit "+tx.FunctionName, err)
			}
			if commit == nil || commit.TxID == "" {
				return report, NewError(KindUnexpected, "submit "+tx.FunctionName, errors.New("no transaction id in commit event"))
			}
			trackedTxID = commit.TxID
			result.Payload = string(payload)
			result.TxID = trackedTxID
			logger.Info("*** Result: committed",
				zap.String("txId", trackedTxID),
				zap.String("validation", commit.ValidationCode),
				zap.ByteString("result", payload))

		case ActionLookup:
			channel := r.Config.Network.Channel
			result.Args = []string{channel, trackedTxID}
			record, err := clientinterfaces.LookupTransaction(network, r.Config.Script.QueryContract, channel, trackedTxID)
			if err != nil {
				return report, NewError(KindUnexpected, "look up transaction", err)
			}
			result.TxID = record.TxID
			result.Payload = strings.Join(record.Args, ",")
			logger.Info("*** Result: "+result.Payload,
				zap.String("txId", record.TxID),
				zap.String("validation", record.ValidationCode))

		case ActionExpectRejection:
			result.Expected = true
			_, err := contract.SubmitTransaction(tx.FunctionName, tx.Args...)
			if err == nil {
				logger.Warn("******** FAILED to return an error")
				break
			}
			rejection := NewError(KindBusiness, "submit "+tx.FunctionName, err)
			result.Error = rejection.Error()
			logger.Info("*** Successfully caught the error", zap.Error(rejection))
		}

		report.Add(result)
	}

	return report, nil
}

func (r *TransactionRunner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.L()
	}
	return r.Logger
}
