// Package mmap maps staged dataset files read-only into memory so that
// blob readers and the netCDF decoder can address them without copying.
package mmap
