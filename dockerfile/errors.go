package dockerfile

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// Returned by [Dockerfile.Copy] when the source is a zero-value [Source],
// i.e. built with neither [Src] nor [SrcList].
var ErrInvalidSource = fmt.Errorf("copy source must be a single path or a path list: %w", errdefs.ErrInvalidArgument)
