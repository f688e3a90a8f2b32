package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	kernel32         = syscall.NewLazyDLL("kernel32.dll")
	getLastInputInfo = user32.NewProc("GetLastInputInfo")
	getTickCount     = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type win32 struct{}

func newIdleProvider() IdleProvider {
	if getLastInputInfo.Find() != nil || getTickCount.Find() != nil {
		return unsupported{}
	}

	return win32{}
}

func (win32) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	ok, _, err := getLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ok == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}

	// both counters are 32-bit milliseconds and wrap together
	now, _, _ := getTickCount.Call()
	idle := uint32(now) - info.dwTime

	return time.Duration(idle) * time.Millisecond, nil
}
