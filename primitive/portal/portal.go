// Package portal mounts overlay content at the document's top layer,
// outside normal layout flow, so floating content escapes ancestor
// clipping and stacking. Later mounts sit above earlier ones; the host
// renders portal children last, in order.
package portal

import "github.com/DanielMazurkiewicz/jezarch-sub006/primitive/dom"

// Mount appends content to the document's portal root and returns the
// unmount func. Unmounting twice is harmless; mounting a nil content
// returns a no-op unmount.
func Mount(doc dom.Document, content dom.Element) (unmount func()) {
	if content == nil {
		return func() {}
	}
	root := doc.PortalRoot()
	root.AppendChild(content)
	done := false
	return func() {
		if done {
			return
		}
		done = true
		root.RemoveChild(content)
	}
}
