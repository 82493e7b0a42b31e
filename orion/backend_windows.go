//go:build windows

package orion

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/BellumGames/MultiMediaLab/pulse/backend/dx9"
	"github.com/BellumGames/MultiMediaLab/pulse/backend/soft"
)

func newFactory(backend Backend) (pulse.Direct3D, error) {
	switch backend {
	case BackendAuto, BackendD3D9:
		d3d, err := dx9.New()
		if err != nil {
			return nil, err
		}

		return d3d, nil

	case BackendSoft:
		return soft.New(soft.Options{}), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
}
