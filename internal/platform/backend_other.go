//go:build !linux

package platform

// Open reports ErrUnsupported off Linux.
func Open() (Backend, error) {
	return nil, ErrUnsupported
}
