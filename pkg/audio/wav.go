package audio

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/minseok4171/aidict/pkg/utils"
)

const wavHeaderSize = 44

// WriteWAV writes the buffer as a PCM WAV file: the standard 44-byte RIFF
// header followed by the interleaved 16-bit samples.
func WriteWAV(w io.Writer, buf *Buffer) error {
	if w == nil {
		return utils.WrapIfNotNil(errors.New("nil writer"))
	}
	if buf == nil || len(buf.Channels) == 0 || buf.FrameCount() == 0 {
		return utils.WrapIfNotNil(errors.New("buffer is empty"))
	}
	if buf.SampleRate <= 0 {
		return utils.WrapIfNotNil(errors.New("buffer has no sample rate"))
	}

	pcm := EncodePCM(buf)
	channels := len(buf.Channels)
	byteRate := buf.SampleRate * channels * bytesPerSample

	var header [wavHeaderSize]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(wavHeaderSize-8+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM, no compression
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*bytesPerSample))
	binary.LittleEndian.PutUint16(header[34:36], 16) // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	if _, err := w.Write(header[:]); err != nil {
		return utils.WrapIfNotNil(err)
	}
	if _, err := w.Write(pcm); err != nil {
		return utils.WrapIfNotNil(err)
	}
	return nil
}
