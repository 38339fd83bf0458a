// Package app is the application layer - the only component that references
// every domain collaborator. It owns the fill-selection session state
// machine: Idle -> Active on FillSelection, Active -> Finalizing -> Idle on
// Finalize, with the save/new scene events cleaning up, restoring, or
// force-clearing the session in between.
package app
