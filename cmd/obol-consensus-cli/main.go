package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"obol.dev/node/consensus"
)

// One-shot JSON tool: a single request on stdin, a single response on
// stdout. Used by conformance fixtures and by other-language clients.
type Request struct {
	Op                 string   `json:"op"`
	PrevHashHex        string   `json:"prev_hash,omitempty"`
	RealRootHex        string   `json:"real_root,omitempty"`
	ChallengeSizeLimit uint64   `json:"challenge_size_limit,omitempty"`
	ProofHex           string   `json:"proof,omitempty"`
	BlockHex           string   `json:"block_hex,omitempty"`
	TxHex              string   `json:"tx_hex,omitempty"`
	Txids              []string `json:"txids,omitempty"`
	Network            string   `json:"network,omitempty"`
}

type Response struct {
	Ok        bool   `json:"ok"`
	Err       string `json:"err,omitempty"`
	Valid     *bool  `json:"valid,omitempty"`
	ProofHex  string `json:"proof,omitempty"`
	ScriptHex string `json:"script,omitempty"`
	TxidHex   string `json:"txid,omitempty"`
	MerkleHex string `json:"merkle_root,omitempty"`
	Consumed  int    `json:"consumed,omitempty"`
}

func writeResp(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

func fail(err string) Response {
	return Response{Ok: false, Err: err}
}

func decodeHash32(s string, name string) ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("%s: bad hex", name)
	}
	if len(raw) != 32 {
		return out, fmt.Errorf("%s: want 32 bytes, got %d", name, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

func paramsFor(req Request) (consensus.Params, error) {
	params := consensus.DevnetParams()
	switch req.Network {
	case "", "devnet":
	case "mainnet":
		params = consensus.MainnetParams()
	default:
		return consensus.Params{}, fmt.Errorf("unknown network %q", req.Network)
	}
	if req.ChallengeSizeLimit != 0 {
		params.ChallengeSizeLimit = req.ChallengeSizeLimit
	}
	return params, nil
}

func handle(req Request) Response {
	switch req.Op {
	case "compute_proof":
		prev, err := decodeHash32(req.PrevHashHex, "prev_hash")
		if err != nil {
			return fail(err.Error())
		}
		root, err := decodeHash32(req.RealRootHex, "real_root")
		if err != nil {
			return fail(err.Error())
		}
		params, err := paramsFor(req)
		if err != nil {
			return fail(err.Error())
		}
		proof := consensus.ComputeChallengeProof(prev, root, params)
		return Response{Ok: true, ProofHex: hex.EncodeToString(proof[:])}

	case "encode_commitment":
		proof, err := decodeHash32(req.ProofHex, "proof")
		if err != nil {
			return fail(err.Error())
		}
		script := consensus.EncodeChallengeCommitment(proof)
		return Response{Ok: true, ScriptHex: hex.EncodeToString(script)}

	case "verify_block":
		raw, err := hex.DecodeString(req.BlockHex)
		if err != nil {
			return fail("block_hex: bad hex")
		}
		var expectedPrev *[32]byte
		if req.PrevHashHex != "" {
			prev, err := decodeHash32(req.PrevHashHex, "prev_hash")
			if err != nil {
				return fail(err.Error())
			}
			expectedPrev = &prev
		}
		params, err := paramsFor(req)
		if err != nil {
			return fail(err.Error())
		}
		valid := true
		if _, err := consensus.ValidateBlock(raw, expectedPrev, params); err != nil {
			valid = false
			if te, ok := err.(*consensus.TxError); ok {
				return Response{Ok: true, Valid: &valid, Err: string(te.Code)}
			}
			return Response{Ok: true, Valid: &valid, Err: err.Error()}
		}
		return Response{Ok: true, Valid: &valid}

	case "parse_tx":
		raw, err := hex.DecodeString(req.TxHex)
		if err != nil {
			return fail("tx_hex: bad hex")
		}
		_, txid, n, err := consensus.ParseTx(raw)
		if err != nil {
			if te, ok := err.(*consensus.TxError); ok {
				return fail(string(te.Code))
			}
			return fail(err.Error())
		}
		return Response{Ok: true, TxidHex: hex.EncodeToString(txid[:]), Consumed: n}

	case "merkle_root":
		leaves := make([][32]byte, 0, len(req.Txids))
		for _, s := range req.Txids {
			leaf, err := decodeHash32(s, "txid")
			if err != nil {
				return fail(err.Error())
			}
			leaves = append(leaves, leaf)
		}
		root, err := consensus.MerkleRoot(leaves)
		if err != nil {
			return fail(err.Error())
		}
		return Response{Ok: true, MerkleHex: hex.EncodeToString(root[:])}

	default:
		return fail(fmt.Sprintf("unknown op %q", req.Op))
	}
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResp(os.Stdout, fail(fmt.Sprintf("bad request: %v", err)))
		return
	}
	writeResp(os.Stdout, handle(req))
}
