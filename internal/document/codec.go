package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"flowdraw/internal/diagram"
	"flowdraw/internal/logging"
)

// Format is an on-disk encoding.
type Format int

const (
	JSON    Format = iota // .flow
	MsgPack               // .flowb
)

const (
	ExtJSON    = ".flow"
	ExtMsgPack = ".flowb"
)

func (f Format) String() string {
	if f == MsgPack {
		return "msgpack"
	}
	return "json"
}

// FormatFor picks the encoding from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		return JSON, nil
	case ExtMsgPack:
		return MsgPack, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Marshal encodes d.
func Marshal(d *Document, f Format) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if f == MsgPack {
		b, err = msgpack.Marshal(d)
	} else {
		b, err = json.MarshalIndent(d, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", f, err)
	}
	return b, nil
}

// Unmarshal decodes a document. Field validation happens in Apply.
func Unmarshal(b []byte, f Format) (*Document, error) {
	d := &Document{}
	var err error
	if f == MsgPack {
		err = msgpack.Unmarshal(b, d)
	} else {
		err = json.Unmarshal(b, d)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", f, err)
	}
	return d, nil
}

// Save writes the diagram in s to path, encoded according to its extension.
func Save(path string, s *diagram.Store) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	b, err := Marshal(FromStore(s), f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	logging.Logger().Info("document saved", "path", path, "format", f, "bytes", len(b))
	return nil
}

// Load reads path into s. See Document.Apply for how invalid records are
// handled.
func Load(path string, s *diagram.Store, opts Options) (warnings error, err error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	d, err := Unmarshal(b, f)
	if err != nil {
		return nil, err
	}
	return d.Apply(s, opts)
}
