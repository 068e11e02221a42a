package arweave

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"
)

var b64 = base64.RawURLEncoding

// Tag is a plain-text name/value pair attached to a transaction.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Transaction is a format-2 Arweave transaction.
type Transaction struct {
	Target   string
	Data     []byte
	Tags     []Tag
	Quantity sdkmath.Int
	Reward   sdkmath.Int
	LastTx   string

	owner     []byte
	dataRoot  []byte
	signature []byte
	id        string
}

// NewTransaction builds an unsigned transaction transferring nothing to target.
func NewTransaction(target string, data []byte, tags ...Tag) *Transaction {
	return &Transaction{
		Target:   target,
		Data:     data,
		Tags:     tags,
		Quantity: sdkmath.ZeroInt(),
		Reward:   sdkmath.ZeroInt(),
	}
}

func (tx *Transaction) AddTag(name, value string) {
	tx.Tags = append(tx.Tags, Tag{Name: name, Value: value})
}

// ID is empty until the transaction is signed.
func (tx *Transaction) ID() string { return tx.id }

func (tx *Transaction) Signature() []byte { return tx.signature }

// SignatureData is the deep hash the owner signs.
func (tx *Transaction) SignatureData() ([]byte, error) {
	target, err := b64.DecodeString(tx.Target)
	if err != nil {
		return nil, fmt.Errorf("decode target: %w", err)
	}
	lastTx, err := b64.DecodeString(tx.LastTx)
	if err != nil {
		return nil, fmt.Errorf("decode last_tx: %w", err)
	}

	tags := make([]any, len(tx.Tags))
	for i, t := range tx.Tags {
		tags[i] = []any{[]byte(t.Name), []byte(t.Value)}
	}

	return deepHash([]any{
		[]byte("2"),
		tx.owner,
		target,
		[]byte(tx.Quantity.String()),
		[]byte(tx.Reward.String()),
		lastTx,
		tags,
		[]byte(strconv.Itoa(len(tx.Data))),
		tx.dataRoot,
	}), nil
}

// Sign sets the owner, data root, signature and id.
func (tx *Transaction) Sign(w *Wallet) error {
	tx.owner = w.Owner()
	tx.dataRoot = dataRoot(tx.Data)
	if tx.dataRoot == nil {
		tx.dataRoot = []byte{}
	}

	msg, err := tx.SignatureData()
	if err != nil {
		return err
	}
	sig, err := w.Sign(msg)
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}
	sum := sha256.Sum256(sig)

	tx.signature = sig
	tx.id = b64.EncodeToString(sum[:])
	return nil
}

type wireTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireTransaction struct {
	Format    int       `json:"format"`
	ID        string    `json:"id"`
	LastTx    string    `json:"last_tx"`
	Owner     string    `json:"owner"`
	Tags      []wireTag `json:"tags"`
	Target    string    `json:"target"`
	Quantity  string    `json:"quantity"`
	Data      string    `json:"data"`
	DataSize  string    `json:"data_size"`
	DataRoot  string    `json:"data_root"`
	Reward    string    `json:"reward"`
	Signature string    `json:"signature"`
}

func (tx *Transaction) wire() wireTransaction {
	tags := make([]wireTag, len(tx.Tags))
	for i, t := range tx.Tags {
		tags[i] = wireTag{Name: b64.EncodeToString([]byte(t.Name)), Value: b64.EncodeToString([]byte(t.Value))}
	}
	return wireTransaction{
		Format:    2,
		ID:        tx.id,
		LastTx:    tx.LastTx,
		Owner:     b64.EncodeToString(tx.owner),
		Tags:      tags,
		Target:    tx.Target,
		Quantity:  tx.Quantity.String(),
		Data:      b64.EncodeToString(tx.Data),
		DataSize:  strconv.Itoa(len(tx.Data)),
		DataRoot:  b64.EncodeToString(tx.dataRoot),
		Reward:    tx.Reward.String(),
		Signature: b64.EncodeToString(tx.signature),
	}
}
