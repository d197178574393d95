package qris

import (
	"fmt"
	"strings"
)

const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

// Checksum computes the CRC16-CCITT (false) checksum of data and returns it
// as a 4-digit uppercase hex string, as carried in QRIS tag 63.
//
// Each character contributes its low 8 bits, shifted into the high byte of
// the running value, followed by 8 shift steps with a conditional XOR of the
// polynomial 0x1021.
func Checksum(data string) string {
	crc := uint32(crcInitial)

	for _, ch := range []byte(data) {
		crc ^= uint32(ch) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}

	return fmt.Sprintf("%04X", crc&0xFFFF)
}

// VerifyChecksum checks the trailing 4-character checksum of a full QRIS
// payload against the CRC16 of everything before it. Payloads shorter than
// 4 characters cannot carry a checksum and always fail.
func VerifyChecksum(payload string) bool {
	if len(payload) < 4 {
		return false
	}

	claimed := payload[len(payload)-4:]
	computed := Checksum(payload[:len(payload)-4])

	return strings.EqualFold(claimed, computed)
}
