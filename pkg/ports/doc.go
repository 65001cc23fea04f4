/*
Package ports defines the driven ports (interfaces) of the intake engine.

These interfaces decouple the workflow from the LLM provider, the user-facing
terminal and the checkpoint backend, so a deterministic stub can stand in for any
of them in tests.

# Key Interfaces

  - Completer: the Completion Oracle (prompt in, free text out).
  - Asker: the Interaction Oracle (prompt shown to a human, reply returned).
  - StateStore: persists per-step checkpoints of a running conversation.
  - DistributedLocker: keeps two processes from driving the same session.
*/
package ports
