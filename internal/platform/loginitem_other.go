//go:build !linux && !darwin && !windows

package platform

func defaultLoginDir() (string, error) {
	return "", ErrLoginItemUnsupported
}

// Enabled is always false where start at login is unsupported.
func (item *LoginItem) Enabled() bool {
	return false
}

func (item *LoginItem) register() error {
	return ErrLoginItemUnsupported
}

func (item *LoginItem) unregister() error {
	return nil
}
