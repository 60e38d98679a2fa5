/*
Package ports defines the driven ports (interfaces) of the game server.

# Key Interfaces

  - SnapshotStore: persists the last snapshot of each session (memory or Redis).

RunSnapshotStoreContract is shared by every adapter test.
*/
package ports
