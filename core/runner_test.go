package core

import (
	"asset-transfer-client/blockchains/mock"
	"asset-transfer-client/core/configs"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newTestRunner returns a runner against a network holding the InitLedger
// assets plus asset13
func newTestRunner() (*TransactionRunner, *mock.Fabric, *observer.ObservedLogs) {
	fabric := mock.New("mychannel")
	fabric.SeedLedger()
	fabric.PutAsset(mock.Asset{ID: "asset13", Color: "yellow", Size: 5, Owner: "Tom", AppraisedValue: 1300})

	core, logs := observer.New(zap.InfoLevel)

	return &TransactionRunner{
		Config:    configs.Default(),
		Wallet:    fabric,
		CA:        fabric,
		Connector: fabric,
		Logger:    zap.New(core),
	}, fabric, logs
}

var firstTxID = fmt.Sprintf("%064x", 1)

func TestRunnerRunsScriptInOrder(t *testing.T) {
	runner, fabric, _ := newTestRunner()

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enroll admin",
		"put admin",
		"register appUser1 org1.department1",
		"enroll appUser1",
		"put appUser1",
		"connect appUser1",
		"network mychannel",
		"evaluate basic GetAllAssets",
		"evaluate basic ReadAsset asset13",
		"evaluate basic AssetExists asset1",
		"submit basic UpdateAsset asset1 blue 5 Tomoko 350",
		"evaluate qscc GetTransactionByID mychannel " + firstTxID,
		"evaluate basic ReadAsset asset1",
		"submit basic UpdateAsset asset70 blue 5 Tomoko 300",
		"submit basic TransferAsset asset1 Tom",
		"evaluate basic ReadAsset asset1",
		"close",
	}, fabric.Calls())

	assert.Equal(t, []string{
		"GetAllAssets", "ReadAsset", "AssetExists", "UpdateAsset", "GetTransactionByID",
		"ReadAsset", "UpdateAsset", "TransferAsset", "ReadAsset",
	}, report.Functions())

	assert.False(t, fabric.Overlapped())

	connected, closed := fabric.Connections()
	assert.Equal(t, 1, connected)
	assert.Equal(t, 1, closed)
}

func TestRunnerLookupUsesTrackedTxID(t *testing.T) {
	runner, _, logs := newTestRunner()

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	update := report.Steps[3]
	lookup := report.Steps[4]
	require.Equal(t, "UpdateAsset", update.Function)
	require.Equal(t, "GetTransactionByID", lookup.Function)

	assert.Equal(t, firstTxID, update.TxID)
	assert.Equal(t, []string{"mychannel", update.TxID}, lookup.Args)
	assert.Equal(t, update.TxID, lookup.TxID)
	assert.Equal(t, "UpdateAsset,asset1,blue,5,Tomoko,350", lookup.Payload)

	committed := logs.FilterMessage("*** Result: committed").FilterField(zap.String("txId", firstTxID))
	assert.Equal(t, 1, committed.Len())
}

func TestRunnerShowsUpdatedAsset(t *testing.T) {
	runner, fabric, _ := newTestRunner()
	runner.Config.Script.ReadAssetID = "asset1"
	runner.Config.Script.Update.Owner = "Max"
	runner.Config.Script.Update.AppraisedValue = "900"

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	var before, after mock.Asset
	require.Equal(t, []string{"asset1"}, report.Steps[1].Args)
	require.NoError(t, json.Unmarshal([]byte(report.Steps[1].Payload), &before))
	require.Equal(t, []string{"asset1"}, report.Steps[5].Args)
	require.NoError(t, json.Unmarshal([]byte(report.Steps[5].Payload), &after))

	assert.Equal(t, "Tomoko", before.Owner)
	assert.Equal(t, 300, before.AppraisedValue)
	assert.Equal(t, "Max", after.Owner)
	assert.Equal(t, 900, after.AppraisedValue)

	final, ok := fabric.Asset("asset1")
	require.True(t, ok)
	assert.Equal(t, "Tom", final.Owner)
}

func TestRunnerCatchesRejectedUpdate(t *testing.T) {
	runner, fabric, logs := newTestRunner()

	report, err := runner.Run(context.Background())
	require.NoError(t, err)

	rejected := report.Rejected()
	require.Len(t, rejected, 1)
	assert.Equal(t, []string{"asset70", "blue", "5", "Tomoko", "300"}, rejected[0].Args)
	assert.True(t, rejected[0].Expected)
	assert.Contains(t, rejected[0].Error, "business failure")
	assert.Contains(t, rejected[0].Error, "the asset asset70 does not exist")

	caught := logs.FilterMessage("*** Successfully caught the error").All()
	require.Len(t, caught, 1)

	// TransferAsset is still issued after the rejection
	calls := fabric.Calls()
	rejectedAt, transferAt := -1, -1
	for i, call := range calls {
		switch call {
		case "submit basic UpdateAsset asset70 blue 5 Tomoko 300":
			rejectedAt = i
		case "submit basic TransferAsset asset1 Tom":
			transferAt = i
		}
	}
	require.NotEqual(t, -1, rejectedAt)
	assert.Greater(t, transferAt, rejectedAt)
}

func TestRunnerWarnsWhenRejectionDoesNotHappen(t *testing.T) {
	runner, fabric, logs := newTestRunner()
	fabric.PutAsset(mock.Asset{ID: "asset70", Color: "red", Size: 1, Owner: "Ann", AppraisedValue: 1})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Rejected())
	assert.Equal(t, 1, logs.FilterMessage("******** FAILED to return an error").Len())
	assert.Equal(t, 1, fabric.Count("submit basic TransferAsset"))
}

func TestRunnerClosesGatewayOnFailure(t *testing.T) {
	t.Run("failing step", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		fabric.Fail["evaluate basic AssetExists"] = errors.New("peer0.org1.example.com: connection refused")

		report, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, KindUnexpected, KindOf(err))
		assert.Equal(t, []string{"GetAllAssets", "ReadAsset"}, report.Functions())

		calls := fabric.Calls()
		assert.Equal(t, "evaluate basic AssetExists asset1", calls[len(calls)-2])
		assert.Equal(t, "close", calls[len(calls)-1])

		connected, closed := fabric.Connections()
		assert.Equal(t, 1, connected)
		assert.Equal(t, 1, closed)
	})

	t.Run("failing update", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		fabric.Fail["submit basic UpdateAsset"] = errors.New("endorsement policy failure")

		_, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, KindUnexpected, KindOf(err))
		assert.Equal(t, 0, fabric.Count("evaluate qscc"))
		assert.Equal(t, 1, fabric.Count("close"))
	})

	t.Run("failing lookup", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		fabric.Fail["evaluate qscc GetTransactionByID"] = errors.New("access denied")

		_, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, KindUnexpected, KindOf(err))
		assert.Equal(t, 1, fabric.Count("close"))
	})

	t.Run("missing network", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		runner.Config.Network.Channel = "otherchannel"

		_, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, KindConnect, KindOf(err))

		connected, closed := fabric.Connections()
		assert.Equal(t, 1, connected)
		assert.Equal(t, 1, closed)
	})

	t.Run("cancelled", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Run(ctx)
		require.Error(t, err)
		assert.Equal(t, KindUnexpected, KindOf(err))
		assert.Equal(t, 0, fabric.Count("evaluate"))
		assert.Equal(t, 1, fabric.Count("close"))
	})
}

func TestRunnerDoesNotCloseWithoutConnection(t *testing.T) {
	t.Run("connect failure", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		fabric.Fail["connect"] = errors.New("no peers available")

		report, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Nil(t, report)
		assert.Equal(t, KindConnect, KindOf(err))

		connected, closed := fabric.Connections()
		assert.Equal(t, 0, connected)
		assert.Equal(t, 0, closed)
	})

	t.Run("bootstrap failure", func(t *testing.T) {
		runner, fabric, _ := newTestRunner()
		fabric.Fail["enroll"] = errors.New("ca.org1.example.com unreachable")

		_, err := runner.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, KindBootstrap, KindOf(err))
		assert.Equal(t, 0, fabric.Count("connect"))
		assert.Equal(t, 0, fabric.Count("close"))
	})
}

func TestRunnerReusesEnrolledIdentities(t *testing.T) {
	runner, fabric, _ := newTestRunner()

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fabric.Count("enroll admin"))
	assert.Equal(t, 1, fabric.Count("register appUser1"))
	assert.Equal(t, 1, fabric.Count("enroll appUser1"))
	assert.Equal(t, 2, fabric.Count("connect appUser1"))
	assert.Equal(t, 2, fabric.Count("close"))
}

func TestRunnerOptionalSteps(t *testing.T) {
	fabric := mock.New("mychannel")
	c := configs.Default()
	c.Script.InitLedger = true
	c.Script.CreateAsset = &configs.NewAsset{
		ID:          "asset13",
		AssetValues: configs.AssetValues{Color: "yellow", Size: "5", Owner: "Tom", AppraisedValue: "1300"},
	}

	runner := &TransactionRunner{Config: c, Wallet: fabric, CA: fabric, Connector: fabric, Logger: zap.NewNop()}

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"InitLedger", "CreateAsset", "GetAllAssets", "ReadAsset"}, report.Functions()[:4])

	asset13, ok := fabric.Asset("asset13")
	require.True(t, ok)
	assert.Equal(t, 1300, asset13.AppraisedValue)

	// the tracked update is the third submit
	assert.Equal(t, fmt.Sprintf("%064x", 3), report.Steps[5].TxID)
}
