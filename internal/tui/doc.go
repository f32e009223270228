/*
Package tui implements the terminal front end of kurator.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - model.go: Model state, message types and the Update loop
  - keys.go: keyboard routing through the keybinds.Registry
  - render.go: main screen with the four editors, diff pane and bars
  - modals.go: dialogs, confirmations, selector, journal and help
  - prompter.go: the controller-facing Prompter and Indicator

# Threading Model

Every controller call runs inside a tea.Cmd goroutine started by runAction.
Dialogs, confirmations and the busy indicator reach the event loop through
Program.Send, so the controller must never be called from Update itself:
a confirmation sent from Update would wait for an answer the blocked loop
can never deliver.

Each action gets its own cancelable context. The cancel_request binding
(esc by default) cancels all of them; the controller then writes its
"Error: cancelled" placeholder.

# Overlays

A pending confirmation is drawn above queued dialogs, which are drawn above
the current mode. Only one confirmation is shown at a time; a second one
arriving while the first is open is answered "no".
*/
package tui
