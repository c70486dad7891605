package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// ErrCorruptImage indicates a record image with the wrong size or a bad checksum.
var ErrCorruptImage = errors.New("storage: corrupt record image")

// q, cin, c0, v, tf, dt (6 x 8) + Occupied (4) + StepCount (4)
const recordPayloadBytes = 56

// payload + CRC (4)
const RecordSizeBytes = recordPayloadBytes + 4

// ImageSizeBytes is the exact size of a persisted image.
const ImageSizeBytes = Capacity * RecordSizeBytes

type diskRecord struct {
	FlowRate             float64
	InletConcentration   float64
	InitialConcentration float64
	Volume               float64
	FinalTime            float64
	TimeStep             float64
	Occupied             uint32
	StepCount            int32
}

func toDiskRecord(s Slot) diskRecord {
	p, ok := s.Params()
	if !ok {
		return diskRecord{}
	}
	return diskRecord{
		FlowRate:             p.FlowRate,
		InletConcentration:   p.InletConcentration,
		InitialConcentration: p.InitialConcentration,
		Volume:               p.Volume,
		FinalTime:            p.FinalTime,
		TimeStep:             p.TimeStep,
		Occupied:             1,
		StepCount:            int32(p.StepCount()),
	}
}

func (r diskRecord) slot() Slot {
	if r.Occupied == 0 {
		return EmptySlot()
	}
	return FilledSlot(reactor.Params{
		FlowRate:             r.FlowRate,
		InletConcentration:   r.InletConcentration,
		InitialConcentration: r.InitialConcentration,
		Volume:               r.Volume,
		FinalTime:            r.FinalTime,
		TimeStep:             r.TimeStep,
	})
}

func encodeRecord(r diskRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(RecordSizeBytes)

	if err := binary.Write(buf, binary.LittleEndian, r); err != nil {
		return nil, err
	}
	crc := crc32.ChecksumIEEE(buf.Bytes())
	if err := binary.Write(buf, binary.LittleEndian, crc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte) (diskRecord, error) {
	var r diskRecord
	if len(data) != RecordSizeBytes {
		return r, fmt.Errorf("%w: record is %d bytes, want %d", ErrCorruptImage, len(data), RecordSizeBytes)
	}

	want := binary.LittleEndian.Uint32(data[recordPayloadBytes:])
	if got := crc32.ChecksumIEEE(data[:recordPayloadBytes]); got != want {
		return r, fmt.Errorf("%w: checksum %08x, want %08x", ErrCorruptImage, got, want)
	}

	if err := binary.Read(bytes.NewReader(data[:recordPayloadBytes]), binary.LittleEndian, &r); err != nil {
		return r, err
	}
	if r.Occupied > 1 {
		return r, fmt.Errorf("%w: occupancy flag %d", ErrCorruptImage, r.Occupied)
	}
	if r.Occupied == 1 && (math.IsNaN(r.Volume) || r.Volume <= 0) {
		return r, fmt.Errorf("%w: filled record with volume %g", ErrCorruptImage, r.Volume)
	}
	return r, nil
}

// EncodeImage serializes all slots into one fixed-size image.
func EncodeImage(slots Slots) ([]byte, error) {
	out := make([]byte, 0, ImageSizeBytes)
	for i, s := range slots {
		rec, err := encodeRecord(toDiskRecord(s))
		if err != nil {
			return nil, fmt.Errorf("encode slot %d: %w", i+1, err)
		}
		out = append(out, rec...)
	}
	return out, nil
}

// DecodeImage parses an image produced by EncodeImage.
func DecodeImage(r io.Reader) (Slots, error) {
	var slots Slots

	data, err := io.ReadAll(io.LimitReader(r, ImageSizeBytes+1))
	if err != nil {
		return slots, err
	}
	if len(data) != ImageSizeBytes {
		return slots, fmt.Errorf("%w: image is %d bytes, want %d", ErrCorruptImage, len(data), ImageSizeBytes)
	}

	for i := range slots {
		off := i * RecordSizeBytes
		rec, err := decodeRecord(data[off : off+RecordSizeBytes])
		if err != nil {
			return slots, fmt.Errorf("slot %d: %w", i+1, err)
		}
		slots[i] = rec.slot()
	}
	return slots, nil
}
