//go:build windows

package fsmeta

import (
	"os"
	"syscall"
	"time"
)

func birthTime(path string, info os.FileInfo) time.Time {
	if info == nil {
		var err error
		if info, err = os.Stat(path); err != nil {
			return time.Time{}
		}
	}
	d, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}
	}
	return time.Unix(0, d.CreationTime.Nanoseconds())
}
