// SPDX-License-Identifier: EPL-2.0

package utils

// ClampUnit clamps x to [-1, 1].
func ClampUnit(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a normalized sample to 16-bit PCM, clamping out of
// range input. Positive full scale maps to 32767 to avoid overflow.
func Float32ToInt16(x float32) int16 {
	return int16(ClampUnit(x) * 32767.0)
}

// Int16ToFloat32 converts 16-bit PCM to a normalized sample.
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// IntToFloat32 normalizes an integer PCM sample of the given bit depth.
// Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	var full float32
	switch bitDepth {
	case 8:
		full = 128.0
	case 24:
		full = 8388608.0
	case 32:
		full = 2147483648.0
	default:
		full = 32768.0
	}
	return float32(v) / full
}
