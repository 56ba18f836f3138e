package eventlog

import (
	"encoding/binary"
	"encoding/json"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/huddlesim/gridiron/state"
)

// Field slots for the hand-assembled eventBatch table, mirroring the
// fixed-slot layout bridge.go builds for AggStats: no generated
// accessor types, just StartObject/PrependSlot/EndObject against the
// raw Builder.
const (
	slotMatchID    = 0
	slotTurnNumber = 1
	slotEvents     = 2
	numEventBatchSlots = 3
)

// Event field slots within the nested gameEvent table.
const (
	slotEventType        = 0
	slotEventDescription = 1
	slotEventDataJSON    = 2
	numEventSlots        = 3
)

// BinaryEncoder writes each turn's event batch as a length-prefixed
// flatbuffers table: compact enough for thousands of unattended
// matches, at the cost of not being human-readable without a decoder.
type BinaryEncoder struct {
	w io.Writer
}

// NewBinaryEncoder wraps w as a GameLogger.
func NewBinaryEncoder(w io.Writer) *BinaryEncoder {
	return &BinaryEncoder{w: w}
}

func (e *BinaryEncoder) LogTurn(matchID string, turnNumber int, events []state.Event) error {
	builder := flatbuffers.NewBuilder(256 + 64*len(events))

	eventOffsets := make([]flatbuffers.UOffsetT, len(events))
	for i, ev := range events {
		dataJSON, err := json.Marshal(ev.Data)
		if err != nil {
			return err
		}
		typeOff := builder.CreateString(ev.Type)
		descOff := builder.CreateString(ev.Description)
		dataOff := builder.CreateString(string(dataJSON))

		builder.StartObject(numEventSlots)
		builder.PrependUOffsetTSlot(slotEventType, typeOff, 0)
		builder.PrependUOffsetTSlot(slotEventDescription, descOff, 0)
		builder.PrependUOffsetTSlot(slotEventDataJSON, dataOff, 0)
		eventOffsets[i] = builder.EndObject()
	}

	builder.StartVector(flatbuffers.SizeUOffsetT, len(eventOffsets), flatbuffers.SizeUOffsetT)
	for i := len(eventOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(eventOffsets[i])
	}
	eventsVector := builder.EndVector(len(eventOffsets))

	matchIDOff := builder.CreateString(matchID)

	builder.StartObject(numEventBatchSlots)
	builder.PrependUOffsetTSlot(slotMatchID, matchIDOff, 0)
	builder.PrependInt32Slot(slotTurnNumber, int32(turnNumber), 0)
	builder.PrependUOffsetTSlot(slotEvents, eventsVector, 0)
	batch := builder.EndObject()

	builder.Finish(batch)
	payload := builder.FinishedBytes()

	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(payload)))
	if _, err := e.w.Write(length[:]); err != nil {
		return err
	}
	_, err := e.w.Write(payload)
	return err
}

func (e *BinaryEncoder) Close() error {
	if closer, ok := e.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
