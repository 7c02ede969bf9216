// Package parser drives an LALR(1) table over a token stream.
//
// Package: parser
// Title: Mina LR Parser
// Description: Table-driven shift/reduce parser with an explicit stack and
//              yacc-style error recovery. Semantic values are produced by
//              reduce functions registered per production label, so the
//              driver knows nothing about the tree it builds. A parse either
//              returns the root value or an ErrorList with every lexical and
//              syntax error in detection order; partial results are never
//              returned. A malformed table surfaces as a critical error with
//              code INTERNAL_INCONSISTENCY instead of an ErrorList.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
//
// Error recovery works on productions that contain the error pseudo-terminal,
// e.g. Stmt -> error ';'. After a syntax error the stack is popped until a
// state accepts error, error is shifted and input is discarded until a
// token fits again. Three tokens must be shifted before the next error is
// reported; an error while still recovering discards the lookahead instead
// of popping. Every reported error is therefore separated from the next by
// consumed input, and a parse of N tokens reports at most N errors.
package parser
