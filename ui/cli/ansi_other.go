//go:build !windows

package cli

// terminals outside Windows understand ANSI already
func EnableANSI() {}
