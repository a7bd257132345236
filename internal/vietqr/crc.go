package vietqr

import "fmt"

const crcPolynomial = 0x1021

// Checksum computes CRC-16/CCITT-FALSE over data: initial value 0xFFFF,
// polynomial 0x1021, no reflection, no final XOR.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// CRC16CCITT returns the checksum of data as 4 uppercase hex digits.
func CRC16CCITT(data string) string {
	return fmt.Sprintf("%04X", Checksum([]byte(data)))
}
