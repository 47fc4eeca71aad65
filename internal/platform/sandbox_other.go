//go:build !linux

package platform

func isSandboxed() bool { return false }
