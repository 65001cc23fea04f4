/*
Package domain contains the core domain models of the intake workflow.

It defines the conversation record threaded through every step, the identifiers
of the steps themselves and the errors a run can end with. The package is kept
free of I/O so that adapters (oracles, checkpoint stores, renderers) can depend on
it without pulling in each other.

# Key Entities

  - State: the mutable record of one conversation (branch fields, transcript).
  - StepID: the tagged identifier of a node in the workflow graph.
  - Step: a static description of a node and its outgoing transitions.
  - OwnerDetails: the structured record extracted on the owner branch.
  - Listing: an entry of the rental catalog offered on the resident branch.
*/
package domain
