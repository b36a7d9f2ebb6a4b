/*
Package dsl provides a fluent Go builder for constructing stories in code.

It is an alternative to YAML documents and scene directories, useful for
tests, generated content and IDE-checked authoring.

Example usage:

	b := dsl.New("cafe", "S1")

	b.Add("S1").
		Title("Im Café").
		Narrate("You walk into a small café in Berlin.").
		Say("Kellnerin", "Guten Tag! Was darf es sein?", "Good day! What would you like?").
		Choose("coffee", "Einen Kaffee, bitte.", "S2").Feedback("Perfekt!")

	b.Add("S2").
		Narrate("The coffee arrives.").
		End()

	story, err := b.Build()
*/
package dsl
