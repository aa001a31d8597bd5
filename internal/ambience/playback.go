package ambience

import (
	"errors"
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Player is the external playback primitive a channel delegates to. The
// engine owns only playback state and timing; it never touches audio bytes.
type Player interface {
	Play() error
	Pause() error
	SetVolume(v float64)
	SeekToStart() error
	Close() error
}

// errNotReady is the platform-refused-playback case (e.g. the audio device
// is not available yet). Callers treat it as non-fatal and may retry.
var errNotReady = errors.New("ambience: audio device not ready")

// Output owns the oto context shared by all device-backed players.
type Output struct {
	ctx   *oto.Context
	ready chan struct{}
}

func NewOutput() (*Output, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Output{ctx: ctx, ready: ready}, nil
}

// NewPlayer wraps a stereo float32-LE PCM buffer as a device-backed Player.
// Looping players wrap seamlessly; one-shots end at EOF.
func (o *Output) NewPlayer(pcm []byte, loop bool) Player {
	return &otoPlayer{
		out:    o,
		reader: &pcmReader{data: pcm, loop: loop},
		volume: 1.0,
	}
}

type otoPlayer struct {
	out    *Output
	reader *pcmReader
	player oto.Player
	volume float64
}

func (p *otoPlayer) Play() error {
	// Non-blocking readiness check: if the device isn't up yet the play
	// attempt is refused, not queued.
	select {
	case <-p.out.ready:
	default:
		return errNotReady
	}
	if p.player == nil {
		p.player = p.out.ctx.NewPlayer(p.reader)
		p.player.SetVolume(p.volume)
	}
	p.player.Play()
	return nil
}

func (p *otoPlayer) Pause() error {
	if p.player != nil {
		p.player.Pause()
	}
	return nil
}

func (p *otoPlayer) SetVolume(v float64) {
	p.volume = v
	if p.player != nil {
		p.player.SetVolume(v)
	}
}

func (p *otoPlayer) SeekToStart() error {
	p.reader.rewind()
	return nil
}

func (p *otoPlayer) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

// pcmReader feeds PCM to the oto mixer goroutine; rewind comes from the
// engine goroutine, hence the mutex.
type pcmReader struct {
	mu   sync.Mutex
	data []byte
	pos  int
	loop bool
}

func (r *pcmReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if r.pos >= len(r.data) {
		if !r.loop {
			return 0, io.EOF
		}
		r.pos = 0
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func (r *pcmReader) rewind() {
	r.mu.Lock()
	r.pos = 0
	r.mu.Unlock()
}
