//go:build !nogpu

package main

// GPU rasterization when a device is available; CPU otherwise.
import _ "github.com/gogpu/gg/gpu"
