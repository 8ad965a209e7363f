package hexview

import "fmt"

// StatusText describes the selection, or the data length when nothing is
// selected.
func StatusText(length int64, sel *Selection) string {
	if sel == nil || !sel.Active() {
		return fmt.Sprintf("Length: %08X", length)
	}
	r, _ := sel.Range()
	if r.Start == r.End {
		return fmt.Sprintf("Position: %08X", r.Start)
	}
	return fmt.Sprintf("Begin: %08X  End: %08X  Size: %08X", r.Start, r.End, r.Size())
}
