package glm

import (
	"golang.org/x/mobile/exp/f32"
)

func sqrt[T float](value T) T {
	return T(f32.Sqrt(float32(value)))
}

func tan(r Rad) float32 {
	return f32.Tan(float32(r))
}
