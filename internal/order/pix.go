package order

import (
	"fmt"
	"strings"
)

// PixConfig identifies the merchant in generated PIX payloads.
type PixConfig struct {
	Key          string
	MerchantName string
	MerchantCity string
}

// EMV limits for the text fields.
const (
	pixMaxName = 25
	pixMaxCity = 15
	pixMaxTxID = 25
)

// Payload builds a static "copia e cola" PIX payload (EMV MPM format) for the
// given transaction id and amount. The result is fully determined by its
// inputs, so two calls with the same order id and amount yield the same code.
func (c PixConfig) Payload(txid, amount string) string {
	var b strings.Builder
	b.WriteString(emv("00", "01")) // payload format indicator

	account := emv("00", "br.gov.bcb.pix") + emv("01", c.Key)
	b.WriteString(emv("26", account))

	b.WriteString(emv("52", "0000")) // merchant category: unspecified
	b.WriteString(emv("53", "986"))  // currency: BRL
	b.WriteString(emv("54", amount))
	b.WriteString(emv("58", "BR"))
	b.WriteString(emv("59", truncate(c.MerchantName, pixMaxName)))
	b.WriteString(emv("60", truncate(c.MerchantCity, pixMaxCity)))
	b.WriteString(emv("62", emv("05", pixTxID(txid))))

	payload := b.String() + "6304"
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

// emv encodes one id-length-value field.
func emv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// pixTxID strips uuid dashes, which are not in the allowed txid alphabet.
func pixTxID(id string) string {
	return truncate(strings.ReplaceAll(id, "-", ""), pixMaxTxID)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// crc16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as required by
// the EMV MPM spec for field 63.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
