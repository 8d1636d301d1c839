package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"
	"testing"
)

// TIFF field types used by the fixtures.
const (
	TypeASCII    uint16 = 2
	TypeLong     uint16 = 4
	TypeRational uint16 = 5
)

// ExifEntry is one tag to embed in a fixture. Set one of Text, Rationals
// or Longs.
type ExifEntry struct {
	GPS       bool
	Tag       uint16
	Text      string
	Rationals [][2]uint32
	Longs     []uint32
}

const (
	tagExifIFDPointer = 0x8769
	tagGPSIFDPointer  = 0x8825
)

// MinimalJPEG returns the smallest byte sequence a JPEG reader accepts as a
// baseline image container, without any EXIF block.
func MinimalJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

// JFIFWithoutExif returns a JPEG with an APP0 JFIF header, a comment and a
// quantization table but no APP1 segment.
func JFIFWithoutExif() []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write([]byte{0xFF, 0xE0, 0x00, 0x10})
	buf.WriteString("JFIF\x00")
	buf.Write([]byte{0x01, 0x01, 0x00, 0x00, 0x48, 0x00, 0x48, 0x00, 0x00})
	comment := "scanned on a flatbed"
	buf.Write([]byte{0xFF, 0xFE})
	_ = binary.Write(&buf, binary.BigEndian, uint16(2+len(comment)))
	buf.WriteString(comment)
	buf.Write([]byte{0xFF, 0xDB, 0x00, 0x43, 0x00})
	for i := 0; i < 64; i++ {
		buf.WriteByte(byte(i + 1))
	}
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// JPEGWithExif returns a JPEG container carrying an APP1 EXIF segment with
// the given entries in the Exif and GPS IFDs.
func JPEGWithExif(entries ...ExifEntry) []byte {
	tiff := buildTIFF(entries)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// WriteJPEGWithExif writes a fixture produced by JPEGWithExif to path.
func WriteJPEGWithExif(t testing.TB, path string, entries ...ExifEntry) {
	t.Helper()
	if err := os.WriteFile(path, JPEGWithExif(entries...), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func buildTIFF(entries []ExifEntry) []byte {
	var exifEntries, gpsEntries []ifdEntry
	for _, e := range entries {
		encoded := encodeEntry(e)
		if e.GPS {
			gpsEntries = append(gpsEntries, encoded)
		} else {
			exifEntries = append(exifEntries, encoded)
		}
	}

	ifdSize := func(n int) int { return 2 + 12*n + 4 }

	var root []ifdEntry
	if len(exifEntries) > 0 {
		root = append(root, ifdEntry{tag: tagExifIFDPointer, typ: 4, count: 1})
	}
	if len(gpsEntries) > 0 {
		root = append(root, ifdEntry{tag: tagGPSIFDPointer, typ: 4, count: 1})
	}

	rootOff := 8
	exifOff := rootOff + ifdSize(len(root))
	gpsOff := exifOff
	if len(exifEntries) > 0 {
		gpsOff = exifOff + ifdSize(len(exifEntries))
	}
	dataOff := gpsOff
	if len(gpsEntries) > 0 {
		dataOff = gpsOff + ifdSize(len(gpsEntries))
	}

	for i := range root {
		ptr := make([]byte, 4)
		if root[i].tag == tagExifIFDPointer {
			binary.BigEndian.PutUint32(ptr, uint32(exifOff))
		} else {
			binary.BigEndian.PutUint32(ptr, uint32(gpsOff))
		}
		root[i].data = ptr
	}

	var data bytes.Buffer
	var out bytes.Buffer
	out.WriteString("MM")
	_ = binary.Write(&out, binary.BigEndian, uint16(42))
	_ = binary.Write(&out, binary.BigEndian, uint32(rootOff))

	writeIFD(&out, &data, root, dataOff)
	if len(exifEntries) > 0 {
		writeIFD(&out, &data, exifEntries, dataOff)
	}
	if len(gpsEntries) > 0 {
		writeIFD(&out, &data, gpsEntries, dataOff)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

func writeIFD(out, data *bytes.Buffer, entries []ifdEntry, dataOff int) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].tag < entries[j].tag })
	_ = binary.Write(out, binary.BigEndian, uint16(len(entries)))
	for _, e := range entries {
		_ = binary.Write(out, binary.BigEndian, e.tag)
		_ = binary.Write(out, binary.BigEndian, e.typ)
		_ = binary.Write(out, binary.BigEndian, e.count)
		if len(e.data) <= 4 {
			field := make([]byte, 4)
			copy(field, e.data)
			out.Write(field)
			continue
		}
		_ = binary.Write(out, binary.BigEndian, uint32(dataOff+data.Len()))
		data.Write(e.data)
		if data.Len()%2 == 1 {
			data.WriteByte(0)
		}
	}
	_ = binary.Write(out, binary.BigEndian, uint32(0))
}

func encodeEntry(e ExifEntry) ifdEntry {
	if len(e.Longs) > 0 {
		data := make([]byte, 0, 4*len(e.Longs))
		for _, v := range e.Longs {
			data = binary.BigEndian.AppendUint32(data, v)
		}
		return ifdEntry{tag: e.Tag, typ: TypeLong, count: uint32(len(e.Longs)), data: data}
	}
	if len(e.Rationals) > 0 {
		data := make([]byte, 0, 8*len(e.Rationals))
		for _, r := range e.Rationals {
			data = binary.BigEndian.AppendUint32(data, r[0])
			data = binary.BigEndian.AppendUint32(data, r[1])
		}
		return ifdEntry{tag: e.Tag, typ: TypeRational, count: uint32(len(e.Rationals)), data: data}
	}
	data := append([]byte(e.Text), 0)
	return ifdEntry{tag: e.Tag, typ: TypeASCII, count: uint32(len(data)), data: data}
}
