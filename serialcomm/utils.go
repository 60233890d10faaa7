// serialcomm/utils.go
package serialcomm

import (
	"github.com/sigurn/crc16"
)

var modbusTable = crc16.MakeTable(crc16.CRC16_MODBUS)

func calculateCRC16(data []byte) uint16 {
	return crc16.Checksum(data, modbusTable)
}

// Fingerprint returns the CRC16/MODBUS of the lines exactly as they go out on
// the wire, terminators included.
func Fingerprint(lines []string) uint16 {
	var data []byte
	for _, line := range lines {
		data = append(data, line...)
		data = append(data, lineTerminator...)
	}
	return calculateCRC16(data)
}
