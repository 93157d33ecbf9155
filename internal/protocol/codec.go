package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMaxFrameSize bounds the payload of a single frame.
const DefaultMaxFrameSize = 64 * 1024

var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
	ErrUnknownKind   = errors.New("unknown message kind")
)

// envelope is the msgpack payload of every frame. Responses leave Client
// zero.
type envelope struct {
	Kind   Kind               `msgpack:"kind"`
	Client uuid.UUID          `msgpack:"client"`
	Body   msgpack.RawMessage `msgpack:"body"`
}

// Codec reads and writes length prefixed frames on a stream. A frame is a
// four byte big endian payload length followed by the payload.
type Codec struct {
	rw       io.ReadWriter
	maxFrame int
}

type CodecOpt func(*Codec)

// WithMaxFrameSize overrides DefaultMaxFrameSize.
func WithMaxFrameSize(n int) CodecOpt {
	return func(c *Codec) {
		if n > 0 {
			c.maxFrame = n
		}
	}
}

func NewCodec(rw io.ReadWriter, opts ...CodecOpt) *Codec {
	c := &Codec{
		rw:       rw,
		maxFrame: DefaultMaxFrameSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadRequest blocks for the next client request.
func (c *Codec) ReadRequest() (Request, error) {
	env, err := c.readEnvelope()
	if err != nil {
		return Request{}, err
	}
	msg, err := decodeBody(env.Kind, env.Body)
	if err != nil {
		return Request{}, err
	}
	return Request{Client: env.Client, Message: msg}, nil
}

// WriteRequest sends msg on behalf of client.
func (c *Codec) WriteRequest(client uuid.UUID, msg Message) error {
	return c.writeEnvelope(client, msg)
}

// ReadResponse blocks for the next server response.
func (c *Codec) ReadResponse() (Message, error) {
	env, err := c.readEnvelope()
	if err != nil {
		return nil, err
	}
	return decodeBody(env.Kind, env.Body)
}

func (c *Codec) WriteResponse(msg Message) error {
	return c.writeEnvelope(uuid.Nil, msg)
}

func (c *Codec) readEnvelope() (envelope, error) {
	payload, err := ReadFrame(c.rw, c.maxFrame)
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	if err := msgpack.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("decoding envelope: %w", err)
	}
	return env, nil
}

func (c *Codec) writeEnvelope(client uuid.UUID, msg Message) error {
	body, err := msgpack.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", msg.Kind(), err)
	}
	payload, err := msgpack.Marshal(envelope{Kind: msg.Kind(), Client: client, Body: body})
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	return WriteFrame(c.rw, payload, c.maxFrame)
}

// ReadFrame reads one frame and returns its payload.
func ReadFrame(r io.Reader, maxFrame int) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if int64(n) > int64(maxFrame) {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, maxFrame)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("reading frame payload: %w", err)
	}
	return payload, nil
}

// WriteFrame writes payload as a single frame.
func WriteFrame(w io.Writer, payload []byte, maxFrame int) error {
	if len(payload) > maxFrame {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(payload), maxFrame)
	}
	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	_, err := w.Write(buf)
	return err
}

func decodeAs[M Message](body []byte) (Message, error) {
	var m M
	if len(body) > 0 {
		if err := msgpack.Unmarshal(body, &m); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", m.Kind(), err)
		}
	}
	return m, nil
}

func decodeBody(k Kind, body []byte) (Message, error) {
	switch k {
	case KindRegister:
		return decodeAs[Register](body)
	case KindConnect:
		return decodeAs[Connect](body)
	case KindRequestRealmsList:
		return decodeAs[RequestRealmsList](body)
	case KindRealmsList:
		return decodeAs[RealmsList](body)
	case KindRequestNewRealm:
		return decodeAs[RequestNewRealm](body)
	case KindRequestRealm:
		return decodeAs[RequestRealm](body)
	case KindRealm:
		return decodeAs[Realm](body)
	case KindExplorer:
		return decodeAs[Explorer](body)
	case KindDropEquipment:
		return decodeAs[DropEquipment](body)
	case KindPickEquipment:
		return decodeAs[PickEquipment](body)
	case KindInvestigateParticularity:
		return decodeAs[InvestigateParticularity](body)
	case KindForgetParticularity:
		return decodeAs[ForgetParticularity](body)
	case KindQuit:
		return decodeAs[Quit](body)
	case KindVoid:
		return decodeAs[Void](body)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
}
