package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/surface"
)

// Point is a client-space position written as [x, y].
type Point [2]float64

// Swipe is a straight drag from From to To sampled Steps times.
type Swipe struct {
	From  Point `yaml:"from"`
	To    Point `yaml:"to"`
	Steps int   `yaml:"steps"`
}

// SetStep replaces card content. Omitted fields keep their value.
type SetStep struct {
	RewardImage *string `yaml:"rewardImage"`
	RewardText  *string `yaml:"rewardText"`
	CoverImage  *string `yaml:"coverImage"`
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Down     *Point   `yaml:"down"`
	Move     *Point   `yaml:"move"`
	Up       bool     `yaml:"up"`
	Swipe    *Swipe   `yaml:"swipe"`
	Wait     string   `yaml:"wait"`
	Set      *SetStep `yaml:"set"`
	Lock     *bool    `yaml:"lock"`
	Clear    bool     `yaml:"clear"`
	Snapshot string   `yaml:"snapshot"`
}

// Script is a recorded session replayed against a card.
type Script struct {
	Steps []Step `yaml:"steps"`
}

var errBadStep = errors.New("scratchdemo: step must set exactly one action")

// parseScript decodes a YAML script.
func parseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scratchdemo: parse script: %w", err)
	}
	for i, st := range s.Steps {
		if st.actions() != 1 {
			return nil, fmt.Errorf("%w (step %d)", errBadStep, i+1)
		}
		if st.Wait != "" {
			if _, err := time.ParseDuration(st.Wait); err != nil {
				return nil, fmt.Errorf("scratchdemo: step %d: %w", i+1, err)
			}
		}
	}
	return &s, nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Down != nil, st.Move != nil, st.Up, st.Swipe != nil, st.Wait != "",
		st.Set != nil, st.Lock != nil, st.Clear, st.Snapshot != "",
	} {
		if set {
			n++
		}
	}
	return n
}

// defaultScript zig-zags across a card of the given logical size until
// most of it is erased, then waits out the fade.
func defaultScript(width, height int, radius float64) *Script {
	s := &Script{}
	row := radius * 1.5
	if row <= 0 {
		row = 20
	}
	left, right := radius/2, float64(width)-radius/2
	steps := max(int(float64(width)/radius*2), 2)
	for y := radius / 2; y < float64(height); y += row {
		s.Steps = append(s.Steps,
			Step{Swipe: &Swipe{From: Point{left, y}, To: Point{right, y}, Steps: steps}},
		)
		left, right = right, left
	}
	s.Steps = append(s.Steps, Step{Wait: "1s"})
	return s
}

// player replays a script against a card driven by a manual clock.
type player struct {
	card  *scratch.Card
	clock *scratch.ManualScheduler
	out   string
}

func (p *player) run(s *Script) error {
	for i, st := range s.Steps {
		if err := p.step(st); err != nil {
			return fmt.Errorf("scratchdemo: step %d: %w", i+1, err)
		}
		p.card.Wait()
	}
	return nil
}

func (p *player) step(st Step) error {
	c := p.card
	switch {
	case st.Down != nil:
		c.PointerDown(scratch.NewPointerEvent(st.Down[0], st.Down[1]))
	case st.Move != nil:
		c.PointerMove(scratch.NewPointerEvent(st.Move[0], st.Move[1]))
	case st.Up:
		c.PointerUp(&scratch.PointerEvent{})
	case st.Swipe != nil:
		p.swipe(*st.Swipe)
	case st.Wait != "":
		d, err := time.ParseDuration(st.Wait)
		if err != nil {
			return err
		}
		p.clock.Advance(d)
	case st.Set != nil:
		var opts []scratch.ContentOption
		if v := st.Set.RewardImage; v != nil {
			opts = append(opts, scratch.WithRewardImage(*v))
		}
		if v := st.Set.RewardText; v != nil {
			opts = append(opts, scratch.WithRewardText(*v))
		}
		if v := st.Set.CoverImage; v != nil {
			opts = append(opts, scratch.WithCoverImage(*v))
		}
		c.Set(opts...)
	case st.Lock != nil:
		c.SetLock(*st.Lock)
	case st.Clear:
		c.Clear()
	case st.Snapshot != "":
		return p.snapshot(st.Snapshot)
	default:
		return errBadStep
	}
	return nil
}

func (p *player) swipe(s Swipe) {
	n := max(s.Steps, 1)
	p.card.PointerDown(scratch.NewPointerEvent(s.From[0], s.From[1]))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		x := s.From[0] + (s.To[0]-s.From[0])*t
		y := s.From[1] + (s.To[1]-s.From[1])*t
		p.card.PointerMove(scratch.NewPointerEvent(x, y))
	}
	p.card.PointerUp(&scratch.PointerEvent{})
}

// snapshot writes the composited card to <out>/<name>.png.
func (p *player) snapshot(name string) error {
	return writeComposite(filepath.Join(p.out, name+".png"), p.card.Reward(), p.card.Cover())
}

func writeComposite(path string, layers ...*surface.Surface) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, surface.Compose(layers...)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
