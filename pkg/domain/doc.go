/*
Package domain contains the core models of the tic-tac-toe machine.

It defines the board, the game context carried between transitions, the state
names, events and the snapshots published to collaborators. This package is kept
pure and free of external dependencies like I/O or persistence.

# Key Entities

  - Board: 3x3 grid of marks ("-", "x", "o"), a value type.
  - GameContext: human symbol, active symbol and board.
  - Event: typed signal with an optional payload (a Move for play events).
  - Snapshot: (state name, context) pair published after every transition.
  - LifecycleHooks: observability callbacks invoked by the engine.
*/
package domain
