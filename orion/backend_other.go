//go:build !windows

package orion

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/BellumGames/MultiMediaLab/pulse/backend/gpu"
	"github.com/BellumGames/MultiMediaLab/pulse/backend/soft"
)

func newFactory(backend Backend) (pulse.Direct3D, error) {
	switch backend {
	case BackendAuto, BackendWGPU:
		return gpu.New(gpu.Options{}), nil

	case BackendSoft:
		return soft.New(soft.Options{}), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
}
