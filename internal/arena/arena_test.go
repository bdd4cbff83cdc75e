// Copyright (c) 2025 Kristoffer Brånemyr
// SPDX-License-Identifier: MIT

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocBumpsSequentially(t *testing.T) {
	a := New(64)

	off1, err := a.Alloc(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0), off1)

	off2, err := a.Alloc(16)
	require.NoError(t, err)
	require.Equal(t, uint32(8), off2)

	require.Equal(t, uint32(24), a.Offset())
}

func TestAllocExhaustion(t *testing.T) {
	a := New(8)

	_, err := a.Alloc(8)
	require.NoError(t, err)

	_, err = a.Alloc(1)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestBytesReflectsLiveRegionOnly(t *testing.T) {
	a := New(32)
	off, err := a.Alloc(4)
	require.NoError(t, err)
	a.PutUint32(off, 0xDEADBEEF)

	require.Len(t, a.Bytes(), 4)
}

func TestUint64RoundTrip(t *testing.T) {
	a := New(16)
	off, err := a.Alloc(8)
	require.NoError(t, err)

	a.PutUint64(off, 0x0123456789ABCDEF)
	require.Equal(t, uint64(0x0123456789ABCDEF), a.Uint64(off))
}

func TestUint32RoundTrip(t *testing.T) {
	a := New(16)
	off, err := a.Alloc(4)
	require.NoError(t, err)

	a.PutUint32(off, 0xCAFEBABE)
	require.Equal(t, uint32(0xCAFEBABE), a.Uint32(off))
}

func TestNewRegionIsZeroed(t *testing.T) {
	a := New(16)
	off, err := a.Alloc(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0), a.Uint64(off))
}
