/*
Package runner implements the interactive play loop for a session.

It acts as the bridge between a session and a terminal or a pipe. The
runner renders each view, waits out deferred feedback transitions, and
maps input lines to navigation events.

# Key Components

  - Runner: The loop. One Run call plays one session until quit or EOF.
  - IOHandler: Decouples presentation from the loop (text or JSON lines).
  - TextHandler: Numbered choices and markdown for interactive use.
  - JSONHandler: One JSON view per line for scripted hosts.

# Input

	1..n      pick the numbered choice
	b, back   return to the previous scene
	r         restart the story
	q, quit   leave

# Usage

	sess, _ := eng.Start(ctx, "cafe", "")
	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, sess); err != nil {
		log.Fatal(err)
	}
*/
package runner
