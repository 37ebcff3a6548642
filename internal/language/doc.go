// Package language normalizes user-supplied language hints into the ISO 639-1
// codes transcription backends accept.
//
// Common codes and English names resolve through a small table; anything else
// is parsed as a BCP 47 tag and reduced to its base language.
package language
