package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/minseok4171/aidict/pkg/utils"
)

var (
	// ErrBusy is returned when Play is called while a clip is still playing.
	ErrBusy = errors.New("audio: playback already in progress")
)

// Player sends decoded buffers to the speaker. At most one clip plays at a
// time; a second Play while the first is draining fails with ErrBusy.
//
// The underlying audio context is process-wide and fixed to one sample rate
// and channel count, so every buffer played through a Player must match the
// format it was created with.
type Player struct {
	otoCtx     *oto.Context
	sampleRate int
	channels   int

	mu      sync.Mutex
	playing bool
}

// NewPlayer opens the audio device for the given PCM format and blocks until
// it is ready.
func NewPlayer(sampleRate, channels int) (*Player, error) {
	if sampleRate <= 0 {
		return nil, utils.WrapIfNotNil(fmt.Errorf("invalid sample rate %d", sampleRate))
	}
	if channels != 1 && channels != 2 {
		return nil, utils.WrapIfNotNil(fmt.Errorf("channels must be 1 or 2, got %d", channels))
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	<-ready

	return &Player{
		otoCtx:     otoCtx,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}

// Play plays the buffer and returns once it has drained or ctx is done.
func (p *Player) Play(ctx context.Context, buf *Buffer) error {
	if buf == nil || buf.FrameCount() == 0 {
		return utils.WrapIfNotNil(errors.New("buffer is empty"))
	}
	if buf.SampleRate != p.sampleRate || len(buf.Channels) != p.channels {
		return utils.WrapIfNotNil(fmt.Errorf(
			"buffer format %dHz/%dch does not match player format %dHz/%dch",
			buf.SampleRate, len(buf.Channels), p.sampleRate, p.channels,
		))
	}

	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return ErrBusy
	}
	p.playing = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	// The reader references data for the whole playback, keeping it alive.
	data := EncodePCM(buf)
	player := p.otoCtx.NewPlayer(bytes.NewReader(data))
	defer player.Close()

	player.Play()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return utils.WrapIfNotNil(ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
	return nil
}

// IsPlaying reports whether a clip is currently draining.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}
