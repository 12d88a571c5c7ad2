package messages

import (
	"bytes"
	"fmt"
	"io"

	snapshotfb "github.com/cbodonnell/tilearea/flatbuffers/snapshot"
	"github.com/cbodonnell/tilearea/pkg/kinematic"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// SerializeAreaSnapshot encodes a snapshot as a zstd compressed flatbuffer.
func SerializeAreaSnapshot(s *AreaSnapshot) ([]byte, error) {
	builder := flatbuffers.NewBuilder(0)
	snapshot := SerializeAreaSnapshotFlatbuffer(builder, s)
	builder.Finish(snapshot)

	b, err := Compress(builder.FinishedBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize area snapshot: %v", err)
	}
	return b, nil
}

func DeserializeAreaSnapshot(data []byte) (*AreaSnapshot, error) {
	b, err := Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize area snapshot: %v", err)
	}

	snapshot, err := DeserializeAreaSnapshotFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize area snapshot: %v", err)
	}

	return snapshot, nil
}

func Compress(b []byte) ([]byte, error) {
	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress message: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed message: %v", err)
	}
	return b, nil
}

func serializeVec3(builder *flatbuffers.Builder, v kinematic.Vector) flatbuffers.UOffsetT {
	snapshotfb.Vec3Start(builder)
	snapshotfb.Vec3AddX(builder, v.X)
	snapshotfb.Vec3AddY(builder, v.Y)
	snapshotfb.Vec3AddZ(builder, v.Z)
	return snapshotfb.Vec3End(builder)
}

func vec3ToVector(fb *snapshotfb.Vec3) kinematic.Vector {
	if fb == nil {
		return kinematic.Vector{}
	}
	return kinematic.Vector{X: fb.X(), Y: fb.Y(), Z: fb.Z()}
}

func SerializeAreaSnapshotFlatbuffer(builder *flatbuffers.Builder, s *AreaSnapshot) flatbuffers.UOffsetT {
	bodies := make([]flatbuffers.UOffsetT, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		bodies = append(bodies, SerializeBodySnapshotFlatbuffer(builder, b))
	}
	snapshotfb.AreaSnapshotStartBodiesVector(builder, len(bodies))
	for i := len(bodies) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(bodies[i])
	}
	bodyVector := builder.EndVector(len(bodies))

	sounds := make([]flatbuffers.UOffsetT, 0, len(s.Sounds))
	for _, sound := range s.Sounds {
		sounds = append(sounds, SerializeSoundSnapshotFlatbuffer(builder, sound))
	}
	snapshotfb.AreaSnapshotStartSoundsVector(builder, len(sounds))
	for i := len(sounds) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(sounds[i])
	}
	soundVector := builder.EndVector(len(sounds))

	areaID := builder.CreateString(s.AreaID)
	name := builder.CreateString(s.Name)
	mode := builder.CreateString(s.Mode)

	snapshotfb.AreaSnapshotStart(builder)
	snapshotfb.AreaSnapshotAddAreaId(builder, areaID)
	snapshotfb.AreaSnapshotAddName(builder, name)
	snapshotfb.AreaSnapshotAddMode(builder, mode)
	snapshotfb.AreaSnapshotAddTimestamp(builder, s.Timestamp)
	snapshotfb.AreaSnapshotAddElapsed(builder, s.Elapsed)
	snapshotfb.AreaSnapshotAddBodies(builder, bodyVector)
	snapshotfb.AreaSnapshotAddSounds(builder, soundVector)
	return snapshotfb.AreaSnapshotEnd(builder)
}

func SerializeBodySnapshotFlatbuffer(builder *flatbuffers.Builder, b *BodySnapshot) flatbuffers.UOffsetT {
	entityID := builder.CreateString(b.EntityID)
	name := builder.CreateString(b.Name)
	position := serializeVec3(builder, b.Position)
	size := serializeVec3(builder, b.Size)
	velocity := serializeVec3(builder, b.Velocity)

	snapshotfb.BodyStart(builder)
	snapshotfb.BodyAddEntityId(builder, entityID)
	snapshotfb.BodyAddName(builder, name)
	snapshotfb.BodyAddPosition(builder, position)
	snapshotfb.BodyAddSize(builder, size)
	snapshotfb.BodyAddVelocity(builder, velocity)
	snapshotfb.BodyAddOrientation(builder, b.Orientation)
	snapshotfb.BodyAddSleeping(builder, b.Sleeping)
	snapshotfb.BodyAddCapabilities(builder, b.Capabilities)
	return snapshotfb.BodyEnd(builder)
}

func SerializeSoundSnapshotFlatbuffer(builder *flatbuffers.Builder, s *SoundSnapshot) flatbuffers.UOffsetT {
	filename := builder.CreateString(s.Filename)
	position := serializeVec3(builder, s.Position)

	snapshotfb.SoundStart(builder)
	snapshotfb.SoundAddFilename(builder, filename)
	snapshotfb.SoundAddPosition(builder, position)
	snapshotfb.SoundAddTtl(builder, s.TTL)
	snapshotfb.SoundAddElapsed(builder, s.Elapsed)
	return snapshotfb.SoundEnd(builder)
}

func DeserializeAreaSnapshotFlatbuffer(b []byte) (*AreaSnapshot, error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("snapshot buffer too short: %d bytes", len(b))
	}
	fb := snapshotfb.GetRootAsAreaSnapshot(b, 0)

	snapshot := &AreaSnapshot{
		AreaID:    string(fb.AreaId()),
		Name:      string(fb.Name()),
		Mode:      string(fb.Mode()),
		Timestamp: fb.Timestamp(),
		Elapsed:   fb.Elapsed(),
		Bodies:    make([]*BodySnapshot, 0, fb.BodiesLength()),
		Sounds:    make([]*SoundSnapshot, 0, fb.SoundsLength()),
	}

	for i := 0; i < fb.BodiesLength(); i++ {
		body := &snapshotfb.Body{}
		if !fb.Bodies(body, i) {
			return nil, fmt.Errorf("failed to get body at index %d", i)
		}
		snapshot.Bodies = append(snapshot.Bodies, BodyFlatbufferToBodySnapshot(body))
	}

	for i := 0; i < fb.SoundsLength(); i++ {
		sound := &snapshotfb.Sound{}
		if !fb.Sounds(sound, i) {
			return nil, fmt.Errorf("failed to get sound at index %d", i)
		}
		snapshot.Sounds = append(snapshot.Sounds, &SoundSnapshot{
			Filename: string(sound.Filename()),
			Position: vec3ToVector(sound.Position(nil)),
			TTL:      sound.Ttl(),
			Elapsed:  sound.Elapsed(),
		})
	}

	return snapshot, nil
}

func BodyFlatbufferToBodySnapshot(fb *snapshotfb.Body) *BodySnapshot {
	return &BodySnapshot{
		EntityID:     string(fb.EntityId()),
		Name:         string(fb.Name()),
		Position:     vec3ToVector(fb.Position(nil)),
		Size:         vec3ToVector(fb.Size(nil)),
		Velocity:     vec3ToVector(fb.Velocity(nil)),
		Orientation:  fb.Orientation(),
		Sleeping:     fb.Sleeping(),
		Capabilities: fb.Capabilities(),
	}
}
