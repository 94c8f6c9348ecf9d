/*
Package ports defines the driven ports (interfaces) of errfix.

These interfaces decouple walk generation from external implementations, so
generated walks can be kept in memory, in Redis or elsewhere and replayed later.

# Key Interfaces

  - WalkStore: persists generated walks under an ID.
*/
package ports
