package glm

// PerspectiveFovLH builds a left handed perspective projection with
// depth mapped to [0, 1], equal to D3DXMatrixPerspectiveFovLH.
func PerspectiveFovLH[T float](fovY Rad, aspect, near, far T) Mat4[T] {
	yScale := T(1 / tan(fovY*0.5))
	xScale := yScale / aspect

	return Mat4Of([4][4]T{
		{xScale, 0, 0, 0},
		{0, yScale, 0, 0},
		{0, 0, far / (far - near), 1},
		{0, 0, -near * far / (far - near), 0},
	})
}

// LookAtLH builds a left handed view matrix, equal to D3DXMatrixLookAtLH.
func LookAtLH[T float](eye, at, up Vec3[T]) Mat4[T] {
	zAxis := Normalize(at.Sub(eye))
	xAxis := Normalize(up.Cross(zAxis))
	yAxis := zAxis.Cross(xAxis)

	return Mat4Of([4][4]T{
		{xAxis[0], yAxis[0], zAxis[0], 0},
		{xAxis[1], yAxis[1], zAxis[1], 0},
		{xAxis[2], yAxis[2], zAxis[2], 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	})
}
