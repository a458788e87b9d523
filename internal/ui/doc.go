// Package ui contains the Bubble Tea program that hosts the popup menu.
// The Model type focuses on message orchestration; the menu itself lives in
// internal/menu (tree and navigation) and internal/layout (lines, selection
// and viewport).
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses move the layout selection, activate the selected entry or
//     go back (navigation.go). Printable keys feed a type-ahead query that
//     jumps to the best matching entry of the current view.
//   - Activating a command entry queues its action on the command bus
//     (internal/ui/command); the key handler drains the bus into tea.Cmd
//     values, and the resulting actionResultMsg updates the status row or
//     quits the program.
//
// Rendering:
//   - View only re-reads the layout after it signalled a redraw. Label
//     changes to entries outside the viewport leave the cached lines alone
//     until something visible changes.
//
// Backend interactions:
//   - A backend.Watcher reloads the definition file when it changes; Update
//     waits for those events and hands them to the dispatcher, which patches
//     the live menu tree in place so the layout re-wraps only what changed.
package ui
