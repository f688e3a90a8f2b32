//go:build !linux && !windows

package platform

func newIdleProvider() IdleProvider {
	return unsupported{}
}
