package qris

import "strconv"

// Record is a single tag-length-value entry from a QRIS payload.
// Records are ephemeral; they are produced and consumed within one decode
// pass and never persisted.
type Record struct {
	Tag    string
	Length int
	Value  string
}

// Scan walks a flat TLV string and returns the records in source order.
// It is stateless and restartable; callers re-invoke it on record values to
// decode nested blocks.
//
// A record is only emitted when tag (2 chars), length (2 digits) and the full
// value fit within the remaining input. A malformed trailing fragment is
// dropped silently rather than reported: real-world codes are occasionally
// truncated by scanners and downstream code relies on partial decodes.
// Duplicate tags are preserved in order; resolution is the caller's concern.
func Scan(payload string) []Record {
	var records []Record

	pos := 0
	for pos+4 <= len(payload) {
		tag := payload[pos : pos+2]

		length, err := strconv.Atoi(payload[pos+2 : pos+4])
		if err != nil || length < 0 {
			break
		}

		end := pos + 4 + length
		if end > len(payload) {
			break
		}

		records = append(records, Record{
			Tag:    tag,
			Length: length,
			Value:  payload[pos+4 : end],
		})
		pos = end
	}

	return records
}
