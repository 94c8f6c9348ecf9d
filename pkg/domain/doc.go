/*
Package domain contains the core data types shared by the model builder, the walk
generator and the replay driver.

It is kept free of I/O and third-party dependencies, following the same
Hexagonal Architecture split as the rest of the module: adapters (tables,
stores, HTTP) translate to and from these types.

# Key Entities

  - Transition: an immutable (start state, action, end state) triple compared by value.
  - Walk: the ordered transitions traced from a start state, plus its coverage metrics.
  - WalkHooks: optional callbacks fired while walks are generated and replayed.
*/
package domain
