package export

import (
	"errors"
	"image"
	"time"

	log "github.com/sirupsen/logrus"
)

type job struct {
	index int
	img   image.Image
}

// Processor fans frame writes out to a fixed pool of workers and collects one
// result per frame.
type Processor struct {
	startTime time.Time
	endTime   time.Time
	poolSize  int
	jobs      chan job
	results   chan error
	frames    []image.Image
	write     func(index int, img image.Image) error
}

func NewProcessor(poolSize int, frames []image.Image, write func(index int, img image.Image) error) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}

	return &Processor{
		startTime: time.Now(),
		poolSize:  poolSize,
		jobs:      make(chan job),
		results:   make(chan error),
		frames:    frames,
		write:     write,
	}, nil
}

// DispatchJobs sends every non-nil frame to the workers. Frame indexes are
// preserved, so gaps in the sequence stay gaps in the numbering.
func (p *Processor) DispatchJobs() {
	go func() {
		for i, img := range p.frames {
			if img == nil {
				continue
			}
			p.jobs <- job{index: i, img: img}
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Debugf("Starting frame writers with pool size: %d", p.poolSize)

	for i := 0; i < p.poolSize; i++ {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Debugf("Writer %d started", i)
	for j := range p.jobs {
		p.results <- p.write(j.index, j.img)
	}
	log.Debugf("Writer %d finished", i)
}

func (p *Processor) Wait() []error {
	waitFor := 0
	for _, img := range p.frames {
		if img != nil {
			waitFor++
		}
	}
	log.Debugf("Waiting for %d frames to be written", waitFor)

	errors := make([]error, 0, 10)
	for i := 0; i < waitFor; i++ {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Infof("All %d frames written in %s (errors=%d)", waitFor, elapsed, len(errors))
	return errors
}
