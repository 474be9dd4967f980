package stimfile

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/mat"
)

// PCM full-scale values by bit depth
const (
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt8  = 127.0
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// 8-bit PCM is unsigned with silence at 128
	uint8Offset = 128
)

// Recording is a stimulus function decoded from a WAV file.
type Recording struct {
	// Matrix holds one row per sample frame and one column per channel,
	// scaled to [-1, 1].
	Matrix *mat.Dense

	// TemporalResolution is the file's sample rate in samples per second.
	TemporalResolution float64

	// BitDepth is the PCM bit depth of the file.
	BitDepth int
}

// ReadWAV decodes a PCM WAV file into a stimulus function. Each channel is
// one condition and the sample rate is the temporal resolution.
func ReadWAV(r io.ReadSeeker) (*Recording, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	bitDepth := int(decoder.BitDepth)
	channels := int(decoder.NumChans)
	if channels == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidWAV)
	}

	m := deinterleave(buf, channels, bitDepth)
	if m == nil {
		return nil, ErrEmptyFile
	}

	return &Recording{
		Matrix:             m,
		TemporalResolution: float64(decoder.SampleRate),
		BitDepth:           bitDepth,
	}, nil
}

// deinterleave converts interleaved PCM integers to a frames x channels
// matrix. It returns nil when buf holds no whole frame.
func deinterleave(buf *audio.IntBuffer, channels, bitDepth int) *mat.Dense {
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil
	}

	invMaxVal := 1.0 / getMaxValue(bitDepth)
	offset := 0
	if bitDepth == bitsPerSample8 {
		offset = uint8Offset
	}

	m := mat.NewDense(frames, channels, nil)
	for i := range frames {
		for ch := range channels {
			m.Set(i, ch, float64(buf.Data[i*channels+ch]-offset)*invMaxVal)
		}
	}
	return m
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample8:
		return maxInt8
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}
