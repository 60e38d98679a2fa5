/*
Package session runs many games side by side, keyed by session ID.

Every snapshot a game publishes is mirrored into a ports.SnapshotStore so
that other processes (or a restarted server) can read the latest board.
Games themselves live only in memory: a stored session that is not running
here is a read-only view.
*/
package session
