//go:build debug

package deploy

const debugAssertions = true
