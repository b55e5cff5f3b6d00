// Package scratch implements an erasable scratch card: a reward layer
// hidden beneath a cover layer that pointer strokes wipe away.
//
// # Overview
//
// A Card owns two pixel surfaces of the same size. The reward surface is
// painted with a background color, an optional image and centered text.
// The cover surface is painted with a color or image. Pointer strokes
// erase filled circles from the cover with destination-out compositing;
// after every move the card measures the share of cover pixels whose alpha
// is below one half, reports it through OnProgress and, once it reaches
// the threshold, fades out and clears the rest of the cover and calls
// OnSuccess.
//
// # Quick Start
//
//	card, err := scratch.New(scratch.FixedMount{Width: 300, Height: 150},
//	    scratch.WithContent(scratch.WithRewardText("You win")),
//	    scratch.OnProgress(func(p float64) { fmt.Printf("%.2f%%\n", p) }),
//	    scratch.OnSuccess(func() { fmt.Println("revealed") }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer card.Close()
//
//	card.PointerDown(scratch.NewPointerEvent(40, 40))
//	card.PointerMove(scratch.NewPointerEvent(60, 40))
//	card.PointerUp(scratch.NewPointerEvent(60, 40))
//
// # Lifecycle
//
// A card starts Locked, becomes Ready once both layers are painted, is
// Stroking between pointer-down and pointer-up, Clearing during the fade,
// and Cleared afterwards, locked again until Set starts a new cycle. See
// State.
//
// # Hosts
//
// The card never draws to a screen. A host passes a Mount that reports
// where the card sits in client coordinates, forwards pointer events, and
// presents Card.Reward beneath Card.Cover honoring each surface's Opacity
// and Transition. Mounts that implement Attacher are handed the surfaces
// when the card is created.
//
// # Logging
//
// The package is silent by default. SetLogger installs a package-wide
// *slog.Logger; WithLogger sets one per card.
package scratch
