/*
Package runtime implements the guarded transition table and the engine that runs it.

A Table maps each state to an ordered list of rules. A rule carries an optional
event type, an optional guard, an optional reducer and a target. The first rule
whose event matches and whose guard passes is taken; rules without an event
are immediate and are resolved in a loop after every transition, bounded by a
hop limit. A state may carry an invocation: an asynchronous task started when
the engine settles in that state, whose result comes back as a "done" event
unless the engine left the state in the meantime.
*/
package runtime
