/*
Package types defines the data structures shared across snapgen.

# Overview

The types package provides:
  - Character type tags and their canonical ordering
  - Tab identifiers for the two request forms
  - The GenerationRequest variants (character set, passphrase)
  - GenerationResult, the renderable outcome of a submission
  - HealthStatus, the decoded health payload

# Request Variants

CharacterSetRequest:
  - Length and Count bounded by their control pairs
  - CharTypes, a set kept in canonical order (see NormalizeCharTypes)

PassphraseRequest:
  - WordCount bounded by its control pair
  - Capitalize, DashSeparated and AppendDigit flags

Exactly one variant is submitted at a time. The variant is chosen by the
active tab (see Form).

# Health

HealthStatus carries the raw status string plus the snapshot counters the
service reports. State is derived by the client: healthy only when the
service says so, unhealthy for any other decodable answer, unreachable when
the request itself failed.
*/
package types
