// Package accounts provides the account lifecycle primitives for an
// email/password identity service: registration, profile reads and partial
// updates, deletion, credential verification with JWT issuance, and a
// durable journal of operational failures.
//
// Credential store:
//   - CredentialStore owns password hashing, verification, and persistence,
//     and guarantees uniqueness of the login identifier. The packaged
//     BunCredentialStore backs it with bcrypt over bun; any implementation
//     satisfying the contract can replace it.
//
// Outcomes:
//   - Business conflicts (taken identifier, missing account, store declines)
//     and authentication failures are returned as typed values and never
//     journaled. Only unexpected faults cross into the problem journal, and
//     callers see a detail-free internal fault in their place. Wrong
//     password and unknown identifier yield the identical failure so
//     accounts cannot be enumerated.
//
// Problem journal:
//   - Journal is a write-through, lock-serialized failure log persisted as a
//     single JSON file. Records survive restarts and are removed only by an
//     explicit bulk clear.
package accounts
