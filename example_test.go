package abenteuer_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aretw0/abenteuer"
	"github.com/aretw0/abenteuer/pkg/catalog"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/dsl"
)

// ExampleEngine_Start plays the first scenes of the built-in café story.
func ExampleEngine_Start() {
	ctx := context.Background()

	eng, err := abenteuer.New(ctx, abenteuer.WithFeedbackDelay(10*time.Millisecond))
	if err != nil {
		log.Fatal(err)
	}

	s, err := eng.Start(ctx, "cafe", "")
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	view := s.View()
	fmt.Println(view.Scene.ID, view.Scene.Title)

	// No feedback: advances immediately.
	view, _ = s.Choose(ctx, "S1", "go-cafe")
	fmt.Println(view.Scene.ID, view.Scene.Title)

	// Feedback: stays on the scene until the delay elapses.
	view, _ = s.Choose(ctx, "S2", "order-coffee")
	fmt.Println(view.Scene.ID, view.PendingFeedback != "")

	// A second click while the feedback is on screen is ignored.
	_, err = s.Choose(ctx, "S2", "order-tea")
	fmt.Println(domain.IsIgnorable(err))

	view, _ = s.Await(ctx)
	fmt.Println(view.Scene.ID, view.History)

	// Output:
	// S1 Ein Morgen in Berlin
	// S2 Im Café
	// S2 true
	// true
	// S3 [S1 S2 S3]
}

// ExampleNew_custom builds a story in code and serves it instead of the
// built-in catalog.
func ExampleNew_custom() {
	ctx := context.Background()

	b := dsl.New("kiosk", "K1")
	b.Add("K1").Title("Am Kiosk").
		Say("Verkäufer", "Was darf's sein?", "What can I get you?").
		Choose("paper", "Eine Zeitung, bitte.", "K2")
	b.Add("K2").Title("Danke").Narrate("You leave with your paper.")

	story, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	c := catalog.New()
	if err := c.Register(catalog.Entry{Story: story, Title: "Der Kiosk"}); err != nil {
		log.Fatal(err)
	}

	eng, err := abenteuer.New(ctx, abenteuer.WithCatalog(c))
	if err != nil {
		log.Fatal(err)
	}

	// Unknown deep links fall back to the default entry scene.
	s, _ := eng.Start(ctx, "kiosk", "K99")
	view, _ := s.Choose(ctx, "K1", "paper")
	fmt.Println(view.Scene.Title, view.Terminal, view.FollowUps)

	// Output:
	// Danke true [restart exit]
}
