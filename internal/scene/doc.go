// Package scene is an in-memory polygonal scene implementing the host
// scripting surface the fill-selection tools consume: selection state,
// component conversion with the host's native ALL/CONTAINED/PERIMETER
// semantics, UV sets with topological cuts and shell detection, construction
// history, selection modes, event subscriptions, a run-at-next-idle deferred
// queue, undo-chunk bookkeeping, and option vars.
//
// The scene is single-threaded and cooperative: event handlers run
// synchronously inside Dispatch-style triggers (UserSelect, SaveFile, ...),
// and the deferred queue drains after the handlers of each trigger return,
// matching the host application's idle semantics.
package scene
