// Package fst defines the central data model every gofst algorithm and
// engine builds on: Label/StateId, Tr/Trs, the Reader/Mutable traits
// (C4), the Properties bitset (C7), and the two eager storage engines —
// VectorFst (C5, adjacency-list, mutable) and ConstFst (C6, packed,
// read-only). Lazy FSTs (package lazyfst) implement the same Reader
// contract by computing states on demand instead of storing them.
//
// Concurrency mirrors lvlath/core.Graph: a single RWMutex per VectorFst
// guards its state vector, start state, and property bitset as one unit;
// reads proceed concurrently, writes serialize.
package fst
