package consensus

import "fmt"

type ErrorCode string

const (
	TX_ERR_PARSE ErrorCode = "TX_ERR_PARSE"

	BLOCK_ERR_PARSE             ErrorCode = "BLOCK_ERR_PARSE"
	BLOCK_ERR_COINBASE_INVALID  ErrorCode = "BLOCK_ERR_COINBASE_INVALID"
	BLOCK_ERR_MERKLE_INVALID    ErrorCode = "BLOCK_ERR_MERKLE_INVALID"
	BLOCK_ERR_LINKAGE_INVALID   ErrorCode = "BLOCK_ERR_LINKAGE_INVALID"
	BLOCK_ERR_CHALLENGE_INVALID ErrorCode = "BLOCK_ERR_CHALLENGE_INVALID"
)

type TxError struct {
	Code ErrorCode
	Msg  string
}

func (e *TxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func txerr(code ErrorCode, msg string) error {
	return &TxError{Code: code, Msg: msg}
}
