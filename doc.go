// Package gofst is a weighted finite-state transducer library: semiring-
// weighted automata and transducers, built eagerly or lazily, and the
// classic OpenFst-style algorithm suite over them.
//
// 🚀 What is gofst?
//
//	A modern, thread-safe library bringing together:
//
//	  • Semiring algebra: Tropical, Log, Boolean, String, Gallic, and more
//	  • Core FST types: VectorFst (mutable), ConstFst (immutable), symbol tables
//	  • Classic algorithms: determinize, minimize, rmepsilon, compose,
//	    shortest distance/path, weight pushing, connect, replace, factor-weight
//
// ✨ Why choose gofst?
//
//   - Rock-solid    — built-in R/W locks ensure thread-safety
//   - Lazy-capable  — algorithms compose through an on-demand FstOp/Cache
//     framework so a pipeline only expands the states it actually visits
//   - Pure Go       — no cgo, no bindings to an external FST toolkit
//
// Everything is organized under one package per algorithm or component:
//
//	semiring/     — weight algebra
//	symtab/       — symbol tables
//	fst/          — Tr/Trs, VectorFst/ConstFst, properties
//	lazyfst/      — lazy FST framework, caches, state-table hash-consing
//	determinize/, minimize/, rmepsilon/, compose/, shortestpath/, push/,
//	connect/, trsort/, encode/, replace/, factorweight/ — the algorithm suite
//	fstio/        — binary/text serialization
//	path/         — accepted-path enumeration
//
// See SPEC_FULL.md for the full module-by-module specification this
// library implements.
package gofst
