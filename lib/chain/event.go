// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/ChainSafe/argon-client/lib/common"
	"github.com/ChainSafe/argon-client/lib/metadata"
	"github.com/ChainSafe/argon-client/pkg/scale"
)

// Event is a typed pallet event. Its exported fields are the
// SCALE encoded event fields in order.
type Event interface {
	PalletName() string
	EventName() string
}

// EventDescriptor describes a registered event type.
type EventDescriptor struct {
	Pallet string
	Name   string
	// Hash is the static signature hash.
	Hash common.Hash
	New  func() Event
}

func (d EventDescriptor) String() string {
	return KindEvent + " " + d.Pallet + "." + d.Name
}

// Validate checks the event against the runtime metadata.
func (d EventDescriptor) Validate(md *metadata.Metadata) error {
	hash, err := md.EventHash(d.Pallet, d.Name)
	return checkHash(KindEvent, d.Pallet, d.Name, &d.Hash, hash, err)
}

type eventKey struct {
	pallet string
	name   string
}

// EventRegistry maps pallet and event names to typed events.
type EventRegistry struct {
	events map[eventKey]EventDescriptor
}

// NewEventRegistry returns an empty event registry.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{
		events: make(map[eventKey]EventDescriptor),
	}
}

// Register registers the event built by newEvent with its signature.
func (r *EventRegistry) Register(signature string, newEvent func() Event) {
	event := newEvent()
	key := eventKey{pallet: event.PalletName(), name: event.EventName()}
	r.events[key] = EventDescriptor{
		Pallet: key.pallet,
		Name:   key.name,
		Hash:   metadata.SignatureHash(signature),
		New:    newEvent,
	}
}

// Lookup returns the descriptor of the event.
func (r *EventRegistry) Lookup(pallet, name string) (descriptor EventDescriptor, ok bool) {
	descriptor, ok = r.events[eventKey{pallet: pallet, name: name}]
	return descriptor, ok
}

// Descriptors returns the registered events sorted by pallet and name.
func (r *EventRegistry) Descriptors() []EventDescriptor {
	descriptors := make([]EventDescriptor, 0, len(r.events))
	for _, descriptor := range r.events {
		descriptors = append(descriptors, descriptor)
	}
	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].Pallet != descriptors[j].Pallet {
			return descriptors[i].Pallet < descriptors[j].Pallet
		}
		return descriptors[i].Name < descriptors[j].Name
	})
	return descriptors
}

// Decode decodes the record into its registered typed event.
func (r *EventRegistry) Decode(record EventRecord) (Event, error) {
	descriptor, ok := r.Lookup(record.Pallet, record.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownEvent, record.Pallet, record.Name)
	}
	event := descriptor.New()
	err := record.As(event)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// PhaseKind is the block execution phase an event was emitted in.
type PhaseKind uint8

// Phases of block execution.
const (
	PhaseApplyExtrinsic PhaseKind = iota
	PhaseFinalization
	PhaseInitialization
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseApplyExtrinsic:
		return "ApplyExtrinsic"
	case PhaseFinalization:
		return "Finalization"
	case PhaseInitialization:
		return "Initialization"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(k))
	}
}

// Phase is the phase of an event record.
type Phase struct {
	Kind PhaseKind
	// ExtrinsicIndex is set for PhaseApplyExtrinsic.
	ExtrinsicIndex uint32
}

// EventRecord is an event stored in System.Events with
// its fields kept SCALE encoded.
type EventRecord struct {
	Phase       Phase
	PalletIndex uint8
	Pallet      string
	Index       uint8
	Name        string
	Fields      []byte
	Topics      []common.Hash
}

// As decodes the fields of the record into the typed event,
// after checking the pallet and event names match.
func (e EventRecord) As(event Event) error {
	if event.PalletName() != e.Pallet || event.EventName() != e.Name {
		return fmt.Errorf("%w: record is %s.%s, event is %s.%s", ErrEventMismatch,
			e.Pallet, e.Name, event.PalletName(), event.EventName())
	}

	err := scale.Unmarshal(e.Fields, event)
	if err != nil {
		return fmt.Errorf("decoding event %s.%s: %w", e.Pallet, e.Name, err)
	}
	return nil
}

// Is returns true if the record is the event of the given pallet and name.
func (e EventRecord) Is(pallet, name string) bool {
	return e.Pallet == pallet && e.Name == name
}

// Values decodes the fields of the record into generic values
// using the runtime metadata.
func (e EventRecord) Values(md *metadata.Metadata) (values map[string]any, err error) {
	_, variant, err := md.Event(e.Pallet, e.Name)
	if err != nil {
		return nil, err
	}

	reader := bytes.NewReader(e.Fields)
	values = make(map[string]any, len(variant.Fields))
	for i, field := range variant.Fields {
		name := fmt.Sprintf("%d", i)
		if field.Name != nil {
			name = *field.Name
		}
		values[name], err = md.Types.DecodeValue(field.Type, reader)
		if err != nil {
			return nil, fmt.Errorf("decoding field %s of %s.%s: %w", name, e.Pallet, e.Name, err)
		}
	}
	return values, nil
}

// ParseEventRecords parses the raw value of System.Events.
// Field bytes of each event are delimited using the runtime metadata.
func ParseEventRecords(md *metadata.Metadata, raw []byte) ([]EventRecord, error) {
	reader := bytes.NewReader(raw)
	count, err := scale.DecodeCompactUint(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding event count: %w", err)
	}

	if count > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: %d events in %d bytes", io.ErrUnexpectedEOF, count, len(raw))
	}

	records := make([]EventRecord, count)
	for i := range records {
		records[i], err = parseEventRecord(md, reader)
		if err != nil {
			return nil, fmt.Errorf("event record %d: %w", i, err)
		}
	}

	if reader.Len() > 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingEventData, reader.Len())
	}
	return records, nil
}

func parseEventRecord(md *metadata.Metadata, reader *bytes.Reader) (record EventRecord, err error) {
	record.Phase, err = decodePhase(reader)
	if err != nil {
		return record, err
	}

	record.PalletIndex, err = reader.ReadByte()
	if err != nil {
		return record, fmt.Errorf("reading pallet index: %w", io.ErrUnexpectedEOF)
	}
	record.Index, err = reader.ReadByte()
	if err != nil {
		return record, fmt.Errorf("reading event index: %w", io.ErrUnexpectedEOF)
	}

	pallet, variant, err := md.EventByIndex(record.PalletIndex, record.Index)
	if err != nil {
		return record, err
	}
	record.Pallet = pallet.Name
	record.Name = variant.Name

	start := reader.Size() - int64(reader.Len())
	for _, field := range variant.Fields {
		err = md.Types.Skip(field.Type, reader)
		if err != nil {
			return record, fmt.Errorf("skipping fields of %s.%s: %w", record.Pallet, record.Name, err)
		}
	}
	end := reader.Size() - int64(reader.Len())

	record.Fields = make([]byte, end-start)
	if _, err = reader.ReadAt(record.Fields, start); err != nil && end > start {
		return record, err
	}

	decoder := scale.NewDecoder(reader)
	err = decoder.Decode(&record.Topics)
	if err != nil {
		return record, fmt.Errorf("decoding topics: %w", err)
	}
	return record, nil
}

func decodePhase(reader *bytes.Reader) (phase Phase, err error) {
	kind, err := reader.ReadByte()
	if err != nil {
		return phase, fmt.Errorf("reading phase: %w", io.ErrUnexpectedEOF)
	}

	phase.Kind = PhaseKind(kind)
	switch phase.Kind {
	case PhaseApplyExtrinsic:
		var index [4]byte
		_, err = io.ReadFull(reader, index[:])
		if err != nil {
			return phase, fmt.Errorf("reading extrinsic index: %w", io.ErrUnexpectedEOF)
		}
		phase.ExtrinsicIndex = binary.LittleEndian.Uint32(index[:])
	case PhaseFinalization, PhaseInitialization:
	default:
		return phase, fmt.Errorf("%w: phase %d", metadata.ErrUnknownVariant, kind)
	}
	return phase, nil
}
