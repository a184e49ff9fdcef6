package playback

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

var ErrAlreadyRunning = errors.New("playback already running")

// FrameSource is the read-only view of a frame sequence that playback needs.
type FrameSource interface {
	FrameAt(index int) (image.Image, error)
	Len() int
}

// Sink receives each frame as playback reaches it.
type Sink interface {
	Show(ctx context.Context, index int, img image.Image) error
}

// Player advances through a FrameSource at a configurable rate, handing each
// frame to a Sink. Only one Run may be active at a time. The rate can be
// changed, and playback stopped, from any goroutine.
type Player struct {
	source  FrameSource
	sink    Sink
	fps     *atomic.Int64
	index   *atomic.Int64
	running *atomic.Bool
	stop    *atomic.Bool
}

func NewPlayer(source FrameSource, sink Sink, fps int) (*Player, error) {
	if fps < 1 {
		return nil, fmt.Errorf("fps must be at least 1, got %d", fps)
	}

	return &Player{
		source:  source,
		sink:    sink,
		fps:     atomic.NewInt64(int64(fps)),
		index:   atomic.NewInt64(0),
		running: atomic.NewBool(false),
		stop:    atomic.NewBool(false),
	}, nil
}

// SetFPS changes the playback rate; it takes effect from the next frame.
func (p *Player) SetFPS(fps int) error {
	if fps < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", fps)
	}
	p.fps.Store(int64(fps))
	return nil
}

func (p *Player) FPS() int {
	return int(p.fps.Load())
}

// Index is the next frame to be shown.
func (p *Player) Index() int {
	return int(p.index.Load())
}

// Seek moves playback to the given frame.
func (p *Player) Seek(index int) error {
	if index < 0 || index >= p.source.Len() {
		return fmt.Errorf("cannot seek to %d: sequence has %d frames", index, p.source.Len())
	}
	p.index.Store(int64(index))
	return nil
}

func (p *Player) Running() bool {
	return p.running.Load()
}

// Stop asks a running playback to finish before showing another frame.
func (p *Player) Stop() {
	p.stop.Store(true)
}

// Run shows frames from the current index to the end of the sequence, one
// every 1/fps seconds less the time spent showing the previous one. It returns
// nil at the end of the sequence or after Stop, and the context's error if ctx
// is cancelled first.
func (p *Player) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer p.running.Store(false)
	p.stop.Store(false)

	log.Infof("Starting playback at frame %d (fps=%d)", p.Index(), p.FPS())

	var elapsed time.Duration
	for {
		wait := p.interval() - elapsed
		if wait < 0 {
			wait = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if p.stop.Load() {
			log.Infof("Playback stopped at frame %d", p.Index())
			return nil
		}

		start := time.Now()
		done, err := p.step(ctx)
		if err != nil {
			return err
		}
		if done {
			log.Infof("Playback finished after %d frames", p.source.Len())
			return nil
		}
		elapsed = time.Since(start)
	}
}

func (p *Player) interval() time.Duration {
	return time.Second / time.Duration(p.fps.Load())
}

func (p *Player) step(ctx context.Context) (bool, error) {
	i := p.index.Load()
	if int(i) >= p.source.Len() {
		return true, nil
	}

	img, err := p.source.FrameAt(int(i))
	if err != nil {
		return false, err
	}

	if err := p.sink.Show(ctx, int(i), img); err != nil {
		return false, fmt.Errorf("failed to show frame %d: %w", i, err)
	}

	// a concurrent Seek wins over the automatic advance
	p.index.CompareAndSwap(i, i+1)
	return false, nil
}
