// Package property lets any entity carry an open-ended set of keyed
// properties whose lifetime is tied to the entity itself.
//
// An Owner exposes exactly one Collection for its whole lifetime. Keys are
// usually unexported struct types or other comparable tokens, and a key used
// to store a value of type X should only be read back as X; the generic
// helpers Get, TryGet and GetOrCreateSingleton enforce that association.
//
// Duplicate policy: AddProperty rejects a key that is already present with a
// *DuplicateKeyError, while SetProperty always overwrites. Collections are not
// safe for concurrent use; owners shared across goroutines must lock
// externally.
package property
