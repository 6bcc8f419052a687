package quantize_test

import (
	"math"
	"testing"

	"github.com/PSmerkol/AccordPreprocTools/internal/quantize"
	"github.com/stretchr/testify/assert"
)

func TestField_ZeroRangeUsesGainOne(t *testing.T) {
	enc := quantize.Field(5.0, 5.0, 255)
	assert.Equal(t, 1.0, enc.Gain)
}

func TestQuality_FixedEncoding(t *testing.T) {
	enc := quantize.Quality()
	assert.InDelta(t, 1.0/255.0, enc.Gain, 1e-15)
	assert.Equal(t, 0.0, enc.Offset)
}

func TestEncodeDecode_RoundTripWithinGain(t *testing.T) {
	field := [][]float64{
		{-30, -10, 0, 10, 30, math.NaN()},
		{5, 15, 25, -25, math.NaN(), 0},
	}
	min, max := -30.0, 30.0
	enc := quantize.Field(min, max, 255)

	encoded := quantize.Encode(field, enc)
	decoded := quantize.Decode(encoded, enc)

	for a := range field {
		for r := range field[a] {
			v := field[a][r]
			if math.IsNaN(v) {
				assert.True(t, math.IsNaN(decoded[a][r]))
				continue
			}
			assert.LessOrEqual(t, math.Abs(v-decoded[a][r]), enc.Gain+1e-9)
		}
	}
}

func TestEncode_NaNMapsToNodata(t *testing.T) {
	field := [][]float64{{math.NaN(), 1.0}}
	enc := quantize.Field(0, 10, 200)
	encoded := quantize.Encode(field, enc)
	assert.Equal(t, byte(200), encoded[0][0])
	assert.NotEqual(t, byte(200), encoded[0][1])
}

func TestEncode_ClampsToByteRange(t *testing.T) {
	field := [][]float64{{-1000, 1000}}
	enc := quantize.Field(-1, 1, 255)
	encoded := quantize.Encode(field, enc)
	assert.Equal(t, byte(0), encoded[0][0])
	assert.Equal(t, byte(254), encoded[0][1])
}
