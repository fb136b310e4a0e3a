package video

import "errors"

// ErrScreenNotCompiled is returned when the display is requested but
// the binary was built without the screen tag.
var ErrScreenNotCompiled = errors.New("video: built without screen support (rebuild with -tags screen)")
