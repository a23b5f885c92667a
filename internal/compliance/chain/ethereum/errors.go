package ethereum

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
)

const revertedMessage = "execution reverted"

// classify maps a node failure to a revert or a retryable chain failure.
func classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if reason, ok := revertReason(err); ok {
		return &model.RevertError{Reason: reason}
	}
	return fmt.Errorf("%s: %w: %w", operation, model.ErrChainUnavailable, err)
}

// revertReason extracts the decoded Error(string) reason from a reverted call.
func revertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if reason, ok := decodeRevertData(dataErr.ErrorData()); ok {
			return reason, true
		}
	}

	msg := err.Error()
	i := strings.Index(msg, revertedMessage)
	if i < 0 {
		return "", false
	}
	reason := strings.TrimSpace(strings.TrimPrefix(msg[i+len(revertedMessage):], ":"))
	if reason == "" {
		reason = revertedMessage
	}
	return reason, true
}

func decodeRevertData(data interface{}) (string, bool) {
	encoded, ok := data.(string)
	if !ok {
		return "", false
	}
	raw, err := hexutil.Decode(encoded)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	reason, err := abi.UnpackRevert(raw)
	if err != nil {
		// Custom errors and panics are reported raw.
		return encoded, true
	}
	return reason, true
}

// rejectedBySendNode reports whether a node answered a broadcast with a JSON-RPC error,
// which means the transaction never entered its pool.
func rejectedBySendNode(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && !alreadyKnown(err)
}

func alreadyKnown(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}
