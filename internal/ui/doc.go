// Package ui contains the Bubble Tea program that draws the menu bar, its
// submenus, context menus and the command palette in a terminal.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key messages are translated into activation-key presses and releases
//     (keys.go) and handed to the interaction.Controller, or to the open
//     context menu or palette. Mouse messages are hit tested against the
//     placed boxes (mouse.go) and become enter, move, leave and click calls.
//   - Timers of the menu layer (hover intent, two-frame activation, the
//     reconcile throttle) run on a loop.Queue; its due tasks arrive as
//     taskMsg values so every callback runs inside Update.
//
// Template updates:
//   - A backend.Watcher streams the template file. Each event is decoded
//     with menu.Decode and a reconciliation pass is requested through a
//     backend.Throttle, so bursts of writes collapse into one trailing pass.
//
// Rendering:
//   - View paints the bar, every placed box and the status line onto a cell
//     canvas. The cells geometry used for drawing is the same one handed to
//     the positioner and hit testing, so what is clicked is what is drawn.
package ui
