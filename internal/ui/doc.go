// Package ui contains the Bubble Tea program that powers the document
// intake console. The package is structured so the Model type focuses on
// message orchestration, while dedicated helpers own the form widgets,
// key and pointer routing, layout, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by a focused function (key presses, mouse
//     clicks, terminal resizes).
//   - Key and mouse messages are first translated into synthetic input
//     events and dispatched through the screen's listener chain, where the
//     open primitives (dialogs, selects, the tab strip) get the first look.
//     Only unconsumed events fall back to application-level routing: text
//     entry, focus-ring stepping, and widget activation.
//
// State ownership:
//   - Field values (unit, tags, signature, title, abstract) live in the
//     form type alongside the primitive composites that drive them. The
//     composites own open/closed state, selection, and focus semantics;
//     the form owns the terminal nodes they are wired to.
//   - The element tree lives in internal/termdom. Update re-runs layout
//     after every message so hit-testing rectangles and overlay anchor
//     positions always match what View renders.
//   - Recent user actions are collected in a bounded trace shown on the
//     tracing tab and mirrored to the trace log file.
//
// Rendering:
//   - View draws the base form from widget state, then composites each
//     open overlay (listboxes, dialogs, the help popover) on top of it at
//     the position the placement engine chose, using ANSI-aware splicing
//     so styled backgrounds survive.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (routing, layout, rendering) without needing to
// reason about the entire TUI at once.
package ui
