package qris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_BasicRecords(t *testing.T) {
	records := Scan("0002010102115802ID")

	require.Len(t, records, 3)
	assert.Equal(t, Record{Tag: "00", Length: 2, Value: "01"}, records[0])
	assert.Equal(t, Record{Tag: "01", Length: 2, Value: "11"}, records[1])
	assert.Equal(t, Record{Tag: "58", Length: 2, Value: "ID"}, records[2])
}

func TestScan_EmptyInput(t *testing.T) {
	assert.Empty(t, Scan(""))
}

func TestScan_ZeroLengthValue(t *testing.T) {
	records := Scan("5900")

	require.Len(t, records, 1)
	assert.Equal(t, Record{Tag: "59", Length: 0, Value: ""}, records[0])
}

func TestScan_TruncatedTrailingRecordIsDropped(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{name: "value shorter than declared length", payload: "0002015907TOKO", want: 1},
		{name: "header cut mid length", payload: "000201 59", want: 1},
		{name: "lone partial header", payload: "59", want: 0},
		{name: "non numeric length stops the scan", payload: "000201xxyyZZ", want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Len(t, Scan(tc.payload), tc.want)
		})
	}
}

func TestScan_DuplicateTagsPreservedInOrder(t *testing.T) {
	records := Scan("5904AAAA5904BBBB")

	require.Len(t, records, 2)
	assert.Equal(t, "AAAA", records[0].Value)
	assert.Equal(t, "BBBB", records[1].Value)
}

func TestScan_RestartableOnNestedValue(t *testing.T) {
	outer := Scan("26180014ID.CO.QRIS.WWW")
	require.Len(t, outer, 1)

	inner := Scan(outer[0].Value)
	require.Len(t, inner, 1)
	assert.Equal(t, "00", inner[0].Tag)
	assert.Equal(t, "ID.CO.QRIS.WWW", inner[0].Value)
}

func TestScan_NonASCIIInputDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Scan("00\xff\xfe0102")
		Scan("らくがき0201")
	})
}
