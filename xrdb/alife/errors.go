package alife

import "xrf/xrerr"

// magicSaveMarker reports a mismatched class-specific save-marker
// magic value, per spec §4.1 "Numeric magic values are asserted on
// read and emitted on write".
func magicSaveMarker(class string, want, got uint16) error {
	return xrerr.Magicf("%s save marker: want %d, got %d", class, want, got)
}

// NotImplementedSkeletonSavedData reports the explicitly-refused case
// of spec §4.1: a skeleton with FLAG_SKELETON_SAVED_DATA set, whose
// extended per-bone data this toolkit does not decode.
func NotImplementedSkeletonSavedData() error {
	return xrerr.NotImplementedf("skeleton saved data (FLAG_SKELETON_SAVED_DATA) is not implemented")
}
