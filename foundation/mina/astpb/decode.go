// File: decode.go
// Title: AST Wire Decoder
// Description: Decodes units written by Marshal, skipping unknown fields
//              and checking the schema version and the rebuilt tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package astpb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	minaerror "github.com/msto63/mina/foundation/core/error"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/token"
)

// Unmarshal decodes a unit. Units of a newer schema fail with
// CodeSchemaMismatch, malformed data with CodeDecodeFailed.
func Unmarshal(data []byte) (*Unit, error) {
	u := &Unit{}
	var root []byte

	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case unitSchemaVersion:
			v, n, err := consumeVarint(typ, b)
			u.SchemaVersion = uint32(min(v, math.MaxUint32))
			return n, err
		case unitRoot:
			v, n, err := consumeBytes(typ, b)
			root = v
			return n, err
		case unitSourceName:
			v, n, err := consumeBytes(typ, b)
			u.SourceName = string(v)
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return nil, decodeError(err, "malformed unit")
	}

	switch {
	case u.SchemaVersion == 0:
		return nil, minaerror.New("unit has no schema version").
			WithCode(minaerror.CodeSchemaMismatch).
			WithOperation("astpb.Unmarshal")
	case u.SchemaVersion > SchemaVersion:
		return nil, minaerror.Newf("unit uses schema version %d, newest supported is %d", u.SchemaVersion, SchemaVersion).
			WithCode(minaerror.CodeSchemaMismatch).
			WithOperation("astpb.Unmarshal").
			WithDetail("schema_version", u.SchemaVersion)
	case root == nil:
		return nil, minaerror.New("unit has no root node").
			WithCode(minaerror.CodeDecodeFailed).
			WithOperation("astpb.Unmarshal")
	}

	n, err := decodeNode(root)
	if err != nil {
		return nil, decodeError(err, "malformed root node")
	}
	prog, ok := n.(*ast.Program)
	if !ok {
		return nil, minaerror.Newf("root node is %s, want Program", n.Kind()).
			WithCode(minaerror.CodeDecodeFailed).
			WithOperation("astpb.Unmarshal")
	}
	if err := prog.Validate(); err != nil {
		return nil, decodeError(err, "decoded tree is invalid")
	}

	u.Root = prog
	return u, nil
}

func decodeError(err error, msg string) error {
	return minaerror.Wrap(err, msg).
		WithCode(minaerror.CodeDecodeFailed).
		WithOperation("astpb.Unmarshal")
}

// skip tells walkFields to step over a field it does not know
const skip = -1

// walkFields calls fn for each field of a message. fn returns the number
// of value bytes it consumed, or skip.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, value []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m == skip {
			m = protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
		}
		b = b[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("wire type %d, want varint", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("wire type %d, want bytes", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func decodeNode(b []byte) (ast.Node, error) {
	var (
		kind     ast.NodeKind
		span     token.Span
		tok      *token.Token
		children []ast.Node
	)

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case nodeKind:
			v, n, err := consumeVarint(typ, b)
			if err == nil && (v > 255 || !ast.NodeKind(v).IsValid()) {
				return 0, minaerror.Newf("unknown node kind %d", v).
					WithCode(minaerror.CodeDecodeFailed).
					WithDetail("node_kind", v)
			}
			kind = ast.NodeKind(v)
			return n, err
		case nodeSpan:
			v, n, err := consumeBytes(typ, b)
			if err == nil {
				span, err = decodeSpan(v)
			}
			return n, err
		case nodeToken:
			v, n, err := consumeBytes(typ, b)
			if err == nil {
				var t token.Token
				t, err = decodeToken(v)
				tok = &t
			}
			return n, err
		case nodeChildren:
			v, n, err := consumeBytes(typ, b)
			if err == nil {
				var c ast.Node
				c, err = decodeNode(v)
				children = append(children, c)
			}
			return n, err
		}
		return skip, nil
	})
	if err != nil {
		return nil, err
	}

	if kind == ast.KindInvalid {
		return nil, fmt.Errorf("node without kind")
	}
	if kind.IsToken() {
		if tok == nil {
			return nil, fmt.Errorf("%s node without token", kind)
		}
		if len(children) > 0 {
			return nil, fmt.Errorf("%s node with children", kind)
		}
		return ast.FromToken(kind, *tok)
	}

	n, err := ast.FromChildren(kind, children)
	if err != nil {
		return nil, err
	}
	if span != (token.Span{}) {
		ast.SetRange(n, span)
	}
	return n, nil
}

func decodeToken(b []byte) (token.Token, error) {
	var t token.Token
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case tokenKind:
			v, n, err := consumeVarint(typ, b)
			if err == nil && (v > 255 || !token.Kind(v).IsValid()) {
				err = fmt.Errorf("unknown token kind %d", v)
			}
			t.Kind = token.Kind(v)
			return n, err
		case tokenText:
			v, n, err := consumeBytes(typ, b)
			t.Text = string(v)
			return n, err
		case tokenSpan:
			v, n, err := consumeBytes(typ, b)
			if err == nil {
				t.Span, err = decodeSpan(v)
			}
			return n, err
		}
		return skip, nil
	})
	return t, err
}

func decodeSpan(b []byte) (token.Span, error) {
	var s token.Span
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case spanStart, spanEnd:
			v, n, err := consumeBytes(typ, b)
			if err != nil {
				return n, err
			}
			p, err := decodePos(v)
			if num == spanStart {
				s.Start = p
			} else {
				s.End = p
			}
			return n, err
		}
		return skip, nil
	})
	return s, err
}

func decodePos(b []byte) (token.Pos, error) {
	var p token.Pos
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var dst *int
		switch num {
		case posOffset:
			dst = &p.Offset
		case posLine:
			dst = &p.Line
		case posColumn:
			dst = &p.Column
		default:
			return skip, nil
		}
		v, n, err := consumeVarint(typ, b)
		*dst = int(v)
		return n, err
	})
	return p, err
}
