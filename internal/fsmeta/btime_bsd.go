//go:build darwin || freebsd

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
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Birthtimespec.Unix())
}
