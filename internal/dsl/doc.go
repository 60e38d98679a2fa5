/*
Package dsl provides a fluent builder for guarded transition tables.

	b := dsl.New[Counter]("idle")

	b.Add("idle").
		On("inc", "idle").Assign(func(c Counter, _ domain.Event) Counter { return c + 1 }).
		On("stop", "done")

	b.Add("done")

	table, err := b.Build()

Rules keep their declaration order; the first match wins at runtime.
*/
package dsl
