package mpl

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// instructionData writes prefix followed by the borsh body.
func instructionData(prefix []byte, body func(*bin.Encoder) error) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(prefix)
	if err := body(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePublicKey(enc *bin.Encoder, pk solana.PublicKey) error {
	return enc.WriteBytes(pk[:], false)
}

// writeOption writes the borsh Option tag and, when present, the value.
func writeOption(enc *bin.Encoder, present bool, value func() error) error {
	if err := enc.WriteOption(present); err != nil {
		return err
	}
	if !present {
		return nil
	}
	return value()
}

func writeCreators(enc *bin.Encoder, creators []Creator) error {
	if err := enc.WriteLength(len(creators)); err != nil {
		return err
	}
	for _, c := range creators {
		if err := writePublicKey(enc, c.Address); err != nil {
			return err
		}
		if err := enc.WriteBool(c.Verified); err != nil {
			return err
		}
		if err := enc.WriteUint8(c.Share); err != nil {
			return err
		}
	}
	return nil
}

func writeCollection(enc *bin.Encoder, c *Collection) error {
	return writeOption(enc, c != nil, func() error {
		if err := enc.WriteBool(c.Verified); err != nil {
			return err
		}
		return writePublicKey(enc, c.Key)
	})
}
