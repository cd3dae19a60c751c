//go:build windows

package clock

import (
	"fmt"
	"log/slog"
	"math"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// performance reads QueryPerformanceCounter and sleeps with NtDelayExecution
// when ntdll exports it, or SleepEx otherwise.
type performance struct {
	freq    int64
	ntDelay *windows.LazyProc
}

func newPlatform() (Source, error) {
	var freq, counter int64
	if err := windows.QueryPerformanceFrequency(&freq); err != nil {
		return nil, fmt.Errorf("%w: QueryPerformanceFrequency: %w", ErrUnavailable, err)
	}
	if freq <= 0 {
		return nil, fmt.Errorf("%w: QueryPerformanceFrequency returned %d", ErrUnavailable, freq)
	}
	if err := windows.QueryPerformanceCounter(&counter); err != nil {
		return nil, fmt.Errorf("%w: QueryPerformanceCounter: %w", ErrUnavailable, err)
	}

	p := &performance{freq: freq}

	proc := windows.NewLazySystemDLL("ntdll.dll").NewProc("NtDelayExecution")
	if err := proc.Find(); err != nil {
		slog.Warn("NtDelayExecution not found, using millisecond sleeps", "error", err)
	} else {
		p.ntDelay = proc
	}

	slog.Debug("Clock source ready", "clock", "QueryPerformanceCounter", "frequency", freq)
	return p, nil
}

func (p *performance) Counter() int64 {
	var counter int64
	// cannot fail once probed by newPlatform
	_ = windows.QueryPerformanceCounter(&counter)
	return counter
}

func (p *performance) Frequency() int64 {
	return p.freq
}

func (p *performance) Delay(d time.Duration) error {
	if d <= 0 {
		return nil
	}

	if p.ntDelay != nil {
		// negative intervals are relative, in 100ns units
		interval := -((int64(d) + 99) / 100)
		status, _, _ := p.ntDelay.Call(0, uintptr(unsafe.Pointer(&interval)))
		if status == 0 {
			return nil
		}
		slog.Debug("NtDelayExecution failed, falling back to SleepEx", "status", status)
	}

	ms := (d + time.Millisecond - 1) / time.Millisecond
	if ms > math.MaxUint32-1 {
		ms = math.MaxUint32 - 1
	}
	windows.SleepEx(uint32(ms), false)
	return nil
}
