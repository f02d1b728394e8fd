// Package fuzztests houses Go fuzz harnesses for the crate dump reader.
// Arbitrary bytes must never panic the decoder, anything it accepts must
// survive a re-encode unchanged, and the elision pass must not panic on it.
//
// Не делает: запись файлов.
package fuzztests
