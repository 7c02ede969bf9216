// File: codec.go
// Title: AST Wire Codec
// Description: Marshal and Unmarshal of Mina syntax trees using the
//              protobuf wire primitives.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package astpb

import (
	"google.golang.org/protobuf/encoding/protowire"

	minaerror "github.com/msto63/mina/foundation/core/error"
	"github.com/msto63/mina/foundation/mina/ast"
	"github.com/msto63/mina/foundation/mina/token"
)

// SchemaVersion is the version written by Marshal. Decoders accept every
// version up to and including it.
const SchemaVersion uint32 = 1

// Field numbers, see ast.proto
const (
	unitSchemaVersion protowire.Number = 1
	unitRoot          protowire.Number = 2
	unitSourceName    protowire.Number = 3

	nodeKind     protowire.Number = 1
	nodeSpan     protowire.Number = 2
	nodeToken    protowire.Number = 3
	nodeChildren protowire.Number = 4

	tokenKind protowire.Number = 1
	tokenText protowire.Number = 2
	tokenSpan protowire.Number = 3

	spanStart protowire.Number = 1
	spanEnd   protowire.Number = 2

	posOffset protowire.Number = 1
	posLine   protowire.Number = 2
	posColumn protowire.Number = 3
)

// Unit is one encoded input unit
type Unit struct {
	SchemaVersion uint32
	SourceName    string
	Root          *ast.Program
}

// Marshal encodes u with the current schema version. The tree must pass
// Validate.
func Marshal(u *Unit) ([]byte, error) {
	if u == nil || u.Root == nil {
		return nil, minaerror.New("unit has no root").
			WithCode(minaerror.CodeInvalidInput).
			WithOperation("astpb.Marshal")
	}
	if err := u.Root.Validate(); err != nil {
		return nil, minaerror.Wrap(err, "invalid tree").
			WithCode(minaerror.CodeInvalidInput).
			WithOperation("astpb.Marshal")
	}

	e := &encoder{sizes: make(map[ast.Node]int)}
	rootSize := e.nodeSize(u.Root)

	size := protowire.SizeTag(unitSchemaVersion) + protowire.SizeVarint(uint64(SchemaVersion)) +
		protowire.SizeTag(unitRoot) + protowire.SizeBytes(rootSize)
	if u.SourceName != "" {
		size += protowire.SizeTag(unitSourceName) + protowire.SizeBytes(len(u.SourceName))
	}

	b := make([]byte, 0, size)
	b = protowire.AppendTag(b, unitSchemaVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(SchemaVersion))
	b = protowire.AppendTag(b, unitRoot, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(rootSize))
	b = e.appendNode(b, u.Root)
	if u.SourceName != "" {
		b = protowire.AppendTag(b, unitSourceName, protowire.BytesType)
		b = protowire.AppendString(b, u.SourceName)
	}
	return b, nil
}

// encoder writes nested messages without re-copying them. Message sizes
// are computed first and reused when the length prefixes are written.
type encoder struct {
	sizes map[ast.Node]int
}

func (e *encoder) nodeSize(n ast.Node) int {
	size := protowire.SizeTag(nodeKind) + protowire.SizeVarint(uint64(n.Kind()))
	size += protowire.SizeTag(nodeSpan) + protowire.SizeBytes(spanSize(n.Span()))
	if tok, ok := ast.TokenOf(n); ok {
		size += protowire.SizeTag(nodeToken) + protowire.SizeBytes(tokenSize(tok))
	} else {
		for _, c := range n.Children() {
			size += protowire.SizeTag(nodeChildren) + protowire.SizeBytes(e.nodeSize(c))
		}
	}
	e.sizes[n] = size
	return size
}

func (e *encoder) appendNode(b []byte, n ast.Node) []byte {
	b = protowire.AppendTag(b, nodeKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.Kind()))
	b = appendSpanField(b, nodeSpan, n.Span())
	if tok, ok := ast.TokenOf(n); ok {
		b = protowire.AppendTag(b, nodeToken, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(tokenSize(tok)))
		return appendToken(b, tok)
	}
	for _, c := range n.Children() {
		b = protowire.AppendTag(b, nodeChildren, protowire.BytesType)
		b = protowire.AppendVarint(b, uint64(e.sizes[c]))
		b = e.appendNode(b, c)
	}
	return b
}

func tokenSize(t token.Token) int {
	size := protowire.SizeTag(tokenSpan) + protowire.SizeBytes(spanSize(t.Span))
	if t.Kind != 0 {
		size += protowire.SizeTag(tokenKind) + protowire.SizeVarint(uint64(t.Kind))
	}
	if t.Text != "" {
		size += protowire.SizeTag(tokenText) + protowire.SizeBytes(len(t.Text))
	}
	return size
}

func appendToken(b []byte, t token.Token) []byte {
	if t.Kind != 0 {
		b = protowire.AppendTag(b, tokenKind, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.Kind))
	}
	if t.Text != "" {
		b = protowire.AppendTag(b, tokenText, protowire.BytesType)
		b = protowire.AppendString(b, t.Text)
	}
	return appendSpanField(b, tokenSpan, t.Span)
}

func spanSize(s token.Span) int {
	return protowire.SizeTag(spanStart) + protowire.SizeBytes(posSize(s.Start)) +
		protowire.SizeTag(spanEnd) + protowire.SizeBytes(posSize(s.End))
}

func appendSpanField(b []byte, num protowire.Number, s token.Span) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(spanSize(s)))
	b = appendPosField(b, spanStart, s.Start)
	return appendPosField(b, spanEnd, s.End)
}

func posSize(p token.Pos) int {
	size := 0
	for num, v := range posFields(p) {
		if v != 0 {
			size += protowire.SizeTag(protowire.Number(num+1)) + protowire.SizeVarint(v)
		}
	}
	return size
}

func appendPosField(b []byte, num protowire.Number, p token.Pos) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(posSize(p)))
	for i, v := range posFields(p) {
		if v != 0 {
			b = protowire.AppendTag(b, protowire.Number(i+1), protowire.VarintType)
			b = protowire.AppendVarint(b, v)
		}
	}
	return b
}

// posFields lists the Pos fields in field number order
func posFields(p token.Pos) [3]uint64 {
	return [3]uint64{uint64(p.Offset), uint64(p.Line), uint64(p.Column)}
}
