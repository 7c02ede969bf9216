// File: doc.go
// Title: Mina AST Wire Format Package Documentation
// Description: Versioned protobuf encoding of Mina syntax trees.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

/*
Package astpb encodes Mina syntax trees in the protobuf wire format
described by ast.proto.

A Unit carries the schema version, the source name and the Program root.
Every node is written with its kind, its span and either its token or its
children, so a decoded tree reproduces all leaf lexemes and spans of the
original.

	data, err := astpb.Marshal(&astpb.Unit{SourceName: "main.mina", Root: prog})
	...
	unit, err := astpb.Unmarshal(data)

Decoding fails with CodeSchemaMismatch for units written by a newer schema
and with CodeDecodeFailed for malformed input or unknown node kinds.
*/
package astpb
