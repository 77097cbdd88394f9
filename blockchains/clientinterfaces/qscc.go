package clientinterfaces

import (
	"asset-transfer-client/blockchains/types"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
)

// Query system chaincode and the functions of it used here
const (
	QSCC                   = "qscc"
	QSCCGetTransactionByID = "GetTransactionByID"
)

// LookupTransaction reads the committed transaction txID from the ledger of
// channel through the query system chaincode of network.
func LookupTransaction(network Network, queryContract string, channel string, txID string) (*types.FabricTransactionRecord, error) {
	if txID == "" {
		return nil, errors.New("empty transaction id")
	}

	raw, err := network.GetContract(queryContract).EvaluateTransaction(QSCCGetTransactionByID, channel, txID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get transaction %s", txID)
	}

	return DecodeTransactionRecord(raw)
}

// DecodeTransactionRecord decodes a peer.ProcessedTransaction as returned by
// GetTransactionByID and recovers the arguments of the chaincode invocation.
func DecodeTransactionRecord(raw []byte) (*types.FabricTransactionRecord, error) {
	processed := &pb.ProcessedTransaction{}
	if err := proto.Unmarshal(raw, processed); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling processed transaction")
	}

	if processed.TransactionEnvelope == nil {
		return nil, errors.New("processed transaction has no envelope")
	}

	payload := &common.Payload{}
	if err := proto.Unmarshal(processed.TransactionEnvelope.Payload, payload); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling payload")
	}

	if payload.Header == nil {
		return nil, errors.New("payload has no header")
	}

	channelHeader := &common.ChannelHeader{}
	if err := proto.Unmarshal(payload.Header.ChannelHeader, channelHeader); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling channel header")
	}

	if common.HeaderType(channelHeader.Type) != common.HeaderType_ENDORSER_TRANSACTION {
		return nil, errors.Errorf("transaction %s is not an endorser transaction but %s",
			channelHeader.TxId, common.HeaderType(channelHeader.Type))
	}

	tx := &pb.Transaction{}
	if err := proto.Unmarshal(payload.Data, tx); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling transaction")
	}

	if len(tx.Actions) == 0 {
		return nil, errors.Errorf("transaction %s has no actions", channelHeader.TxId)
	}

	actionPayload := &pb.ChaincodeActionPayload{}
	if err := proto.Unmarshal(tx.Actions[0].Payload, actionPayload); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling chaincode action payload")
	}

	proposalPayload := &pb.ChaincodeProposalPayload{}
	if err := proto.Unmarshal(actionPayload.ChaincodeProposalPayload, proposalPayload); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling chaincode proposal payload")
	}

	invocation := &pb.ChaincodeInvocationSpec{}
	if err := proto.Unmarshal(proposalPayload.Input, invocation); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling chaincode invocation spec")
	}

	spec := invocation.ChaincodeSpec
	if spec == nil || spec.Input == nil {
		return nil, errors.Errorf("transaction %s has no chaincode input", channelHeader.TxId)
	}

	record := &types.FabricTransactionRecord{
		TxID:           channelHeader.TxId,
		ChannelID:      channelHeader.ChannelId,
		ValidationCode: pb.TxValidationCode(processed.ValidationCode).String(),
		Args:           make([]string, 0, len(spec.Input.Args)),
	}
	if spec.ChaincodeId != nil {
		record.ChaincodeName = spec.ChaincodeId.Name
	}
	for _, arg := range spec.Input.Args {
		record.Args = append(record.Args, string(arg))
	}

	return record, nil
}

// EncodeTransactionRecord builds the peer.ProcessedTransaction a peer would
// return for record. Only the fields DecodeTransactionRecord reads are set.
func EncodeTransactionRecord(record *types.FabricTransactionRecord) ([]byte, error) {
	args := make([][]byte, 0, len(record.Args))
	for _, arg := range record.Args {
		args = append(args, []byte(arg))
	}

	invocation, err := proto.Marshal(&pb.ChaincodeInvocationSpec{
		ChaincodeSpec: &pb.ChaincodeSpec{
			Type:        pb.ChaincodeSpec_GOLANG,
			ChaincodeId: &pb.ChaincodeID{Name: record.ChaincodeName},
			Input:       &pb.ChaincodeInput{Args: args},
		},
	})
	if err != nil {
		return nil, err
	}

	proposalPayload, err := proto.Marshal(&pb.ChaincodeProposalPayload{Input: invocation})
	if err != nil {
		return nil, err
	}

	actionPayload, err := proto.Marshal(&pb.ChaincodeActionPayload{ChaincodeProposalPayload: proposalPayload})
	if err != nil {
		return nil, err
	}

	tx, err := proto.Marshal(&pb.Transaction{
		Actions: []*pb.TransactionAction{{Payload: actionPayload}},
	})
	if err != nil {
		return nil, err
	}

	channelHeader, err := proto.Marshal(&common.ChannelHeader{
		Type:      int32(common.HeaderType_ENDORSER_TRANSACTION),
		ChannelId: record.ChannelID,
		TxId:      record.TxID,
	})
	if err != nil {
		return nil, err
	}

	payload, err := proto.Marshal(&common.Payload{
		Header: &common.Header{ChannelHeader: channelHeader},
		Data:   tx,
	})
	if err != nil {
		return nil, err
	}

	code := pb.TxValidationCode_VALID
	if record.ValidationCode != "" {
		value, ok := pb.TxValidationCode_value[record.ValidationCode]
		if !ok {
			return nil, errors.Errorf("unknown validation code %s", record.ValidationCode)
		}
		code = pb.TxValidationCode(value)
	}

	return proto.Marshal(&pb.ProcessedTransaction{
		TransactionEnvelope: &common.Envelope{Payload: payload},
		ValidationCode:      int32(code),
	})
}
