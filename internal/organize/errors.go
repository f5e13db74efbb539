package organize

import "errors"

// ErrNotDirectory reports that the organize target exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")
