// Package device chooses the compute backend handed to the speech-recognition
// pipeline.
//
// Selection is a first-match walk over three tiers: the Apple integrated GPU
// (Metal Performance Shaders), the first CUDA device, then the CPU. A tier
// that is unavailable simply falls through; probing never fails.
package device
