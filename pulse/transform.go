package pulse

import (
	"fmt"
	"math"

	"github.com/BellumGames/MultiMediaLab/glm"
)

var (
	cameraEye    = glm.Vec3f{0, 3, -5}
	cameraLookAt = glm.Vec3f{0, 0, 0}
	cameraUp     = glm.Vec3f{0, 1, 0}
)

const (
	projectionFovY   = glm.Rad(math.Pi / 4)
	projectionAspect = 1.0
	projectionNear   = 1.0
	projectionFar    = 100.0
)

// ComputeWorldTransform returns the world matrix, the identity.
func ComputeWorldTransform() glm.Mat4f {
	return glm.IdentityMat4[float32]()
}

// ComputeViewTransform returns the view matrix of the fixed camera.
func ComputeViewTransform() glm.Mat4f {
	return glm.LookAtLH(cameraEye, cameraLookAt, cameraUp)
}

// ComputeProjectionTransform returns the fixed perspective projection.
func ComputeProjectionTransform() glm.Mat4f {
	return glm.PerspectiveFovLH[float32](projectionFovY, projectionAspect, projectionNear, projectionFar)
}

// SetupTransforms computes all three transforms and sets them on the device.
// The values never change, but they are recomputed on every call.
func SetupTransforms(dev Device) error {
	transforms := []struct {
		state  TransformState
		matrix glm.Mat4f
	}{
		{TransformWorld, ComputeWorldTransform()},
		{TransformView, ComputeViewTransform()},
		{TransformProjection, ComputeProjectionTransform()},
	}

	for _, tr := range transforms {
		if err := dev.SetTransform(tr.state, tr.matrix); err != nil {
			return fmt.Errorf("set %s transform: %w", tr.state, err)
		}
	}

	return nil
}
