//go:build !linux

package services

const supported = false
