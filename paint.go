package scratch

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/scratch/surface"
)

// rewardDelay separates the cover repaint from the reward repaint in Set,
// so the cover is in place before the new reward is drawn beneath it.
const rewardDelay = 30 * time.Millisecond

// paintCover clears the cover and paints the cover image, or the cover
// color when there is none. An image that arrives after a clear started is
// not drawn. c.mu must be held.
func (c *Card) paintCover(gen uint64) {
	c.cover.Clear()
	c.cover.SetCompositeOp(surface.SourceOver)
	c.cover.SetTransition(surface.Transition{})
	c.cover.SetOpacity(1)
	c.coverage.invalidate()

	url := c.cfg.CoverImageURL
	if url == "" {
		c.cover.FillColor(c.coverColor)
		return
	}
	c.loadImage(gen, "cover", url, func(img image.Image) {
		if c.state == StateClearing || c.state == StateCleared {
			return
		}
		c.cover.Save()
		c.cover.SetCompositeOp(surface.SourceOver)
		c.cover.DrawImageScaled(img)
		c.cover.Restore()
		c.coverage.invalidate()
	}, nil)
}

// paintReward clears the reward and paints its background color, image
// and text, in that order. c.mu must be held.
func (c *Card) paintReward(gen uint64) {
	c.reward.Clear()
	if !c.transparentReward {
		c.reward.FillColor(c.rewardColor)
	}

	url := c.cfg.RewardImageURL
	if url == "" {
		c.drawRewardText()
		return
	}
	c.loadImage(gen, "reward", url, c.reward.DrawImageScaled, c.drawRewardText)
}

// drawRewardText centers the reward text on the reward surface.
func (c *Card) drawRewardText() {
	s := c.cfg.RewardText
	if s == "" || c.face == nil {
		return
	}
	w := float64(c.reward.Width())
	h := float64(c.reward.Height())
	x := (w - c.face.Measure(s)) / 2
	y := (h - c.face.Size()) / 2
	c.reward.AddDamage(c.face.Draw(c.reward.Image(), s, x, y, w, c.fontColor))
}

// loadImage fetches url in the background. When it arrives and gen is
// still current, draw paints it; then, whether or not the load succeeded,
// after runs. c.mu must be held.
func (c *Card) loadImage(gen uint64, layer, url string, draw func(image.Image), after func()) {
	c.pending++
	c.loads.Add(1)
	ctx := c.ctx
	go func() {
		c.emit(c.applyImage(ctx, gen, layer, url, draw, after))
	}()
}

// applyImage loads url and applies it under the lock, returning the
// callbacks to run.
func (c *Card) applyImage(ctx context.Context, gen uint64, layer, url string, draw func(image.Image), after func()) []func() {
	defer c.loads.Done()
	defer c.recoverPanic("image load")

	img, err := c.loader.Load(ctx, url)
	return c.update(func() []func() {
		if c.closed || gen != c.gen {
			c.log.Debug("scratch: dropping stale image", slog.String("layer", layer), slog.String("url", url))
			return nil
		}
		c.pending--
		if err != nil {
			c.log.Warn("scratch: image load failed", slog.Any("err", &ImageLoadError{Layer: layer, URL: url, Err: err}))
		} else {
			draw(img)
		}
		if after != nil {
			after()
		}
		return c.unlockIfPainted()
	})
}
