//go:build windows

package shm

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	pageReadwrite    = 0x04
	fileMapAllAccess = 0x000F001F
	invalidHandle    = ^uintptr(0)
)

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procCreateFileMappingW = kernel32.NewProc("CreateFileMappingW")
	procOpenFileMappingW   = kernel32.NewProc("OpenFileMappingW")
	procMapViewOfFile      = kernel32.NewProc("MapViewOfFile")
	procUnmapViewOfFile    = kernel32.NewProc("UnmapViewOfFile")
)

// Region is a mapped view of a named shared-memory object.
type Region struct {
	handle windows.Handle
	addr   uintptr
	size   int
}

// Create creates (or opens, if it already exists) a pagefile-backed named
// region and maps it. A freshly created region is zeroed by the OS.
func Create(name string, size int) (*Region, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	h, _, callErr := procCreateFileMappingW.Call(
		invalidHandle, 0, pageReadwrite,
		0, uintptr(size),
		uintptr(unsafe.Pointer(namep)),
	)
	if h == 0 {
		return nil, fmt.Errorf("CreateFileMapping %q: %v", name, callErr)
	}
	return mapView(windows.Handle(h), size, name)
}

// Open opens an existing named region created by another process.
func Open(name string, size int) (*Region, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}
	h, _, callErr := procOpenFileMappingW.Call(
		fileMapAllAccess, 0,
		uintptr(unsafe.Pointer(namep)),
	)
	if h == 0 {
		return nil, fmt.Errorf("OpenFileMapping %q: %v", name, callErr)
	}
	return mapView(windows.Handle(h), size, name)
}

func mapView(h windows.Handle, size int, name string) (*Region, error) {
	addr, _, callErr := procMapViewOfFile.Call(
		uintptr(h), fileMapAllAccess, 0, 0, uintptr(size),
	)
	if addr == 0 {
		windows.CloseHandle(h)
		return nil, fmt.Errorf("MapViewOfFile %q: %v", name, callErr)
	}
	return &Region{handle: h, addr: addr, size: size}, nil
}

// Bytes exposes the mapped view. The slice stays valid until Close.
func (r *Region) Bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(r.addr)), r.size)
}

// Close unmaps the view and releases the mapping handle.
func (r *Region) Close() error {
	if r.addr != 0 {
		procUnmapViewOfFile.Call(r.addr)
		r.addr = 0
	}
	if r.handle != 0 {
		windows.CloseHandle(r.handle)
		r.handle = 0
	}
	return nil
}
