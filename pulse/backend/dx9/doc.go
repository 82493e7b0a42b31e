// Package dx9 implements the pulse device contract with Direct3D 9.
// It is only available on Windows.
package dx9
