// Package primitive implements the headless interactive composites of the
// jezarch UI layer: Dialog, Popover, Select, Command and Tabs. The package
// owns behavior and state only; rendering, layout and styling belong to the
// host, which talks to the composites through the primitive/dom contract.
//
// Lifecycle:
//   - Every overlay composite shares one state machine, CLOSED → OPENING →
//     OPEN → CLOSING → CLOSED, driven by a controlled/uncontrolled open
//     cell (primitive/cell). OPENING mounts the content at the portal root,
//     registers with the document's overlay manager, captures focus and
//     arms the outside-interaction detector; CLOSING unwinds the same
//     steps in reverse. Both are synchronous bookkeeping around the
//     open/closed render boundary.
//   - Construction never opens. Hosts call Sync once their element refs
//     resolve, and again after changing a controlled value; uncontrolled
//     instances reconcile on their own through the cell subscription.
//   - Unmount force-closes synchronously: pending deferrals (the
//     initial-focus frame, the detector arming task) are cancelled and
//     every listener the instance owns is removed. Nothing fires after
//     teardown.
//
// Shared services:
//   - primitive/overlay arbitrates the document-wide concerns: one Escape
//     listener routed to the topmost open overlay, and the scroll lock
//     held while any modal entry is registered.
//   - primitive/focus captures the previously focused element, defers
//     initial focus one frame, optionally traps Tab cycling (Dialog), and
//     restores focus on close when the captured element is still
//     connected.
//   - primitive/dismiss attaches the outside-pointerdown listener after a
//     zero-delay deferral so the opening click never dismisses its own
//     overlay. Portal-mounted non-modal content (Popover, Select) marks
//     itself ignored, keeping a listbox that floats outside a dialog's
//     subtree from closing the dialog.
//   - primitive/keynav supplies roving-tabindex arrow navigation,
//     Home/End, Enter/Space activation and type-ahead for Select, Command
//     and Tabs.
//   - primitive/position anchors Popover and Select content with the
//     fixed estimated-height flip heuristic.
//
// State ownership:
//   - Select and Command resolve rendered labels through an option
//     registry populated by RegisterOption/RegisterItem, so displaying
//     "what text represents value V" is a map lookup, never a traversal
//     of the host's tree. A controlled Select value with no registered
//     option degrades to the placeholder.
//   - Composites write data-state and ARIA attributes through
//     dom.Element.SetAttr for the host to style; they never read them
//     back.
package primitive
