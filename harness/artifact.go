// Copyright 2026 sort-research Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package harness

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
)

// ElemKind is the element width stored in an artifact.
type ElemKind uint32

const (
	KindI32 ElemKind = 1
	KindU64 ElemKind = 2
)

func (k ElemKind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindU64:
		return "u64"
	default:
		return fmt.Sprintf("ElemKind(%d)", uint32(k))
	}
}

// Artifact is a dumped mismatch: the input, the reference output and the
// backend's output. Values are stored widened to 64 bits.
type Artifact struct {
	Seed     uint64
	Kind     ElemKind
	Backend  string
	Check    string
	Platform string

	Original []uint64
	Expected []uint64
	Got      []uint64
}

// File layout, little endian:
//
//	[magic 8B][version 4B][kind 4B][seed 8B][count 8B][checksum 8B]
//	[len 4B][backend][len 4B][check][len 4B][platform]
//	[original count*8B][expected count*8B][got count*8B]
//
// checksum is xxhash64 of everything after the fixed header.
const (
	artifactMagic      = "SORTCHK\x00"
	artifactVersion    = 1
	artifactHeaderSize = 8 + 4 + 4 + 8 + 8 + 8
)

// Filename returns the default file name for a.
func (a *Artifact) Filename() string {
	return fmt.Sprintf("%s_%s_%d.sortchk", a.Backend, a.Check, a.Seed)
}

func (a *Artifact) size() int {
	labels := 3*4 + len(a.Backend) + len(a.Check) + len(a.Platform)
	return artifactHeaderSize + labels + 3*8*len(a.Original)
}

// WriteArtifact writes a into dir through a memory map and returns the
// file path.
func WriteArtifact(dir string, a *Artifact) (path string, err error) {
	if len(a.Expected) != len(a.Original) || len(a.Got) != len(a.Original) {
		return "", fmt.Errorf("write artifact: length mismatch %d/%d/%d",
			len(a.Original), len(a.Expected), len(a.Got))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	path = filepath.Join(dir, a.Filename())
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	size := a.size()
	if err := f.Truncate(int64(size)); err != nil {
		return "", fmt.Errorf("size artifact: %w", err)
	}
	mm, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
	if err != nil {
		return "", fmt.Errorf("mmap artifact: %w", err)
	}

	encodeArtifact([]byte(mm), a)

	if err := mm.Flush(); err != nil {
		return "", errors.Join(fmt.Errorf("flush artifact: %w", err), mm.Unmap())
	}
	if err := mm.Unmap(); err != nil {
		return "", fmt.Errorf("unmap artifact: %w", err)
	}
	return path, nil
}

func encodeArtifact(data []byte, a *Artifact) {
	le := binary.LittleEndian
	copy(data[0:8], artifactMagic)
	le.PutUint32(data[8:], artifactVersion)
	le.PutUint32(data[12:], uint32(a.Kind))
	le.PutUint64(data[16:], a.Seed)
	le.PutUint64(data[24:], uint64(len(a.Original)))

	off := artifactHeaderSize
	for _, s := range []string{a.Backend, a.Check, a.Platform} {
		le.PutUint32(data[off:], uint32(len(s)))
		off += 4
		off += copy(data[off:], s)
	}
	for _, vals := range [][]uint64{a.Original, a.Expected, a.Got} {
		for _, v := range vals {
			le.PutUint64(data[off:], v)
			off += 8
		}
	}

	le.PutUint64(data[32:], xxhash.Sum64(data[artifactHeaderSize:]))
}

// ReadArtifact maps path read-only and decodes it.
func ReadArtifact(path string) (a *Artifact, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}
	if stat.Size() < artifactHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrArtifactCorrupt, stat.Size())
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap artifact: %w", err)
	}
	defer func() {
		err = errors.Join(err, mm.Unmap())
	}()

	return decodeArtifact([]byte(mm))
}

func decodeArtifact(data []byte) (*Artifact, error) {
	le := binary.LittleEndian
	if len(data) < artifactHeaderSize || string(data[0:8]) != artifactMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrArtifactCorrupt)
	}
	if v := le.Uint32(data[8:]); v != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrArtifactCorrupt, v)
	}
	if sum := xxhash.Sum64(data[artifactHeaderSize:]); sum != le.Uint64(data[32:]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrArtifactCorrupt)
	}

	a := &Artifact{
		Kind: ElemKind(le.Uint32(data[12:])),
		Seed: le.Uint64(data[16:]),
	}
	count := le.Uint64(data[24:])

	off := artifactHeaderSize
	labels := make([]string, 3)
	for i := range labels {
		if off+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated label", ErrArtifactCorrupt)
		}
		n := int(le.Uint32(data[off:]))
		off += 4
		if off+n > len(data) {
			return nil, fmt.Errorf("%w: truncated label", ErrArtifactCorrupt)
		}
		labels[i] = string(data[off : off+n])
		off += n
	}
	a.Backend, a.Check, a.Platform = labels[0], labels[1], labels[2]

	payload := uint64(len(data) - off)
	if count > payload/24 || payload != 3*8*count {
		return nil, fmt.Errorf("%w: payload holds %d bytes, want %d", ErrArtifactCorrupt, len(data)-off, 3*8*count)
	}
	sections := make([][]uint64, 3)
	for i := range sections {
		sections[i] = make([]uint64, count)
		for j := range sections[i] {
			sections[i][j] = le.Uint64(data[off:])
			off += 8
		}
	}
	a.Original, a.Expected, a.Got = sections[0], sections[1], sections[2]
	return a, nil
}
