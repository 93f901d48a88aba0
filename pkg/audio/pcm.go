package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"mime"
	"strconv"
	"strings"
	"time"

	"github.com/minseok4171/aidict/pkg/utils"
)

// The speech backend answers with raw little-endian 16-bit PCM.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1

	bytesPerSample = 2
)

// Buffer holds decoded audio as one float64 slice per channel, samples
// normalized to [-1.0, 1.0). All channels have the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// FrameCount returns the number of frames in the buffer. A frame holds one
// sample per channel.
func (b *Buffer) FrameCount() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	frames := len(b.Channels[0])
	for _, channel := range b.Channels[1:] {
		if len(channel) < frames {
			frames = len(channel)
		}
	}
	return frames
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.FrameCount()) * time.Second / time.Duration(b.SampleRate)
}

// DecodeBase64 decodes a standard base64 payload into raw bytes.
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return data, nil
}

// EncodeBase64 is the inverse of DecodeBase64.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// PCMParams extracts the sample rate and channel count from a PCM MIME type
// such as "audio/L16;codec=pcm;rate=24000". Missing or unparseable
// parameters fall back to the backend defaults.
func PCMParams(mimeType string) (sampleRate, channels int) {
	sampleRate = DefaultSampleRate
	channels = DefaultChannels

	if strings.TrimSpace(mimeType) == "" {
		return sampleRate, channels
	}
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return sampleRate, channels
	}
	if v, ok := params["rate"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			sampleRate = n
		}
	}
	if v, ok := params["channels"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			channels = n
		}
	}
	return sampleRate, channels
}

// DecodePCM deinterleaves little-endian 16-bit PCM into per-channel float64
// samples divided by 32768. A trailing partial frame is dropped.
func DecodePCM(data []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, utils.WrapIfNotNil(fmt.Errorf("invalid sample rate %d", sampleRate))
	}
	if channels <= 0 {
		return nil, utils.WrapIfNotNil(fmt.Errorf("invalid channel count %d", channels))
	}

	frameSize := channels * bytesPerSample
	frames := len(data) / frameSize

	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
	}
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			offset := (i*channels + c) * bytesPerSample
			sample := int16(binary.LittleEndian.Uint16(data[offset:]))
			out[c][i] = float64(sample) / 32768.0
		}
	}

	return &Buffer{SampleRate: sampleRate, Channels: out}, nil
}

// EncodePCM interleaves a buffer back into little-endian 16-bit PCM,
// clamping samples to the int16 range.
func EncodePCM(buf *Buffer) []byte {
	if buf == nil || len(buf.Channels) == 0 {
		return nil
	}

	channels := len(buf.Channels)
	frames := buf.FrameCount()
	out := make([]byte, frames*channels*bytesPerSample)
	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			v := math.Round(buf.Channels[c][i] * 32768.0)
			if v > math.MaxInt16 {
				v = math.MaxInt16
			}
			if v < math.MinInt16 {
				v = math.MinInt16
			}
			offset := (i*channels + c) * bytesPerSample
			binary.LittleEndian.PutUint16(out[offset:], uint16(int16(v)))
		}
	}
	return out
}

// DecodeSpeech turns a raw backend speech payload into a playable buffer,
// taking the rate and channel count from the MIME type.
func DecodeSpeech(mimeType string, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, utils.WrapIfNotNil(errors.New("speech payload is empty"))
	}
	sampleRate, channels := PCMParams(mimeType)
	return DecodePCM(data, sampleRate, channels)
}
